package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/material-mover/marketplace-api/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Quantity    int64              `bson:"quantity"`
	Category    string             `bson:"category"`
	Address     string             `bson:"address"`
	PhoneNo     string             `bson:"phone_no"`
	Image       string             `bson:"image,omitempty"`
	SellerID    primitive.ObjectID `bson:"seller"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc, err := toMongoProduct(p)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return toDomainProduct(mp), nil
}

// FindByIDs fetches the products matching ids. Malformed or unknown ids are
// skipped so a sloppy delegate response cannot fail the whole lookup.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": oids}}, 0)
}

func (r *ProductRepository) FindAll(ctx context.Context, limit int64) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{}, limit)
}

func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, nil
	}
	return r.findMany(ctx, bson.M{"seller": oid}, 0)
}

// SearchText matches query as a literal, case-insensitive substring of title
// or description. The query is escaped before it reaches the regex engine.
func (r *ProductRepository) SearchText(ctx context.Context, query string, limit int64) ([]*domain.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
	}}
	return r.findMany(ctx, filter, limit)
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"quantity":    p.Quantity,
		"category":    p.Category,
		"image":       p.Image,
		"updated_at":  p.UpdatedAt.Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteBySeller(ctx context.Context, sellerID string) error {
	oid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil
	}
	_, err = r.coll.DeleteMany(ctx, bson.M{"seller": oid})
	if err != nil {
		return fmt.Errorf("delete seller products: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by listing and search.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) findMany(ctx context.Context, filter bson.M, limit int64) ([]*domain.Product, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		var mp mongoProduct
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, toDomainProduct(mp))
	}
	return products, cursor.Err()
}

func toMongoProduct(p *domain.Product) (mongoProduct, error) {
	sellerOID, err := primitive.ObjectIDFromHex(p.SellerID)
	if err != nil {
		return mongoProduct{}, fmt.Errorf("invalid seller id %q: %w", p.SellerID, err)
	}
	return mongoProduct{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		Address:     p.Address,
		PhoneNo:     p.PhoneNo,
		Image:       p.Image,
		SellerID:    sellerOID,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}, nil
}

func toDomainProduct(mp mongoProduct) *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		Title:       mp.Title,
		Description: mp.Description,
		Price:       mp.Price,
		Quantity:    mp.Quantity,
		Category:    mp.Category,
		Address:     mp.Address,
		PhoneNo:     mp.PhoneNo,
		Image:       mp.Image,
		SellerID:    mp.SellerID.Hex(),
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}
