package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/ports"
)

// stubProductRepo is an in-memory ProductRepository shared by the service
// tests in this package.
type stubProductRepo struct {
	mu       sync.Mutex
	nextID   int
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) add(p *domain.Product) *domain.Product {
	created, _ := r.Create(context.Background(), p)
	return created
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copy := cloneProduct(p)
	copy.ID = "prod_" + strconv.Itoa(r.nextID)
	r.products[copy.ID] = cloneProduct(copy)
	return copy, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindAll(_ context.Context, limit int64) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) FindBySeller(_ context.Context, sellerID string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) SearchText(_ context.Context, query string, limit int64) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(query)
	var out []*domain.Product
	for _, p := range r.products {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DeleteBySeller(_ context.Context, sellerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.products {
		if p.SellerID == sellerID {
			delete(r.products, id)
		}
	}
	return nil
}

func validInput(sellerID string) ports.CreateProductInput {
	return ports.CreateProductInput{
		Title:       "Oak beams",
		Description: "Seasoned oak, 4m lengths",
		Price:       120,
		Quantity:    8,
		Category:    "Wood",
		Address:     "12 Mill Lane",
		PhoneNo:     "555-0101",
		SellerID:    sellerID,
	}
}

func TestProductService_Create_Success(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput("seller_1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.SellerID != "seller_1" {
		t.Fatalf("unexpected owner: %s", created.SellerID)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	cases := []struct {
		name    string
		mutate  func(*ports.CreateProductInput)
		wantErr error
	}{
		{"missing title", func(in *ports.CreateProductInput) { in.Title = "" }, domain.ErrInvalidProduct},
		{"negative price", func(in *ports.CreateProductInput) { in.Price = -1 }, domain.ErrNegativePrice},
		{"negative quantity", func(in *ports.CreateProductInput) { in.Quantity = -5 }, domain.ErrNegativeQty},
		{"unknown category", func(in *ports.CreateProductInput) { in.Category = "Antimatter" }, domain.ErrUnknownCategory},
	}
	for _, tc := range cases {
		in := validInput("seller_1")
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestProductService_Update_OwnershipPolicy(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())
	created := repo.add(&domain.Product{Title: "Gravel", Description: "bulk", Price: 30, Quantity: 100,
		Category: "Aggregates", Address: "x", PhoneNo: "y", SellerID: "seller_1"})

	newTitle := "Washed gravel"

	// Another seller may not touch it.
	if _, err := svc.Update(context.Background(), created.ID, "seller_2", domain.RoleSeller,
		ports.UpdateProductInput{Title: &newTitle}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The owner may.
	updated, err := svc.Update(context.Background(), created.ID, "seller_1", domain.RoleSeller,
		ports.UpdateProductInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Washed gravel" {
		t.Fatalf("title not updated: %s", updated.Title)
	}
	if updated.Description != "bulk" {
		t.Fatalf("partial update must leave other fields alone, got %q", updated.Description)
	}

	// So may any admin.
	price := 35.0
	if _, err := svc.Update(context.Background(), created.ID, "admin_1", domain.RoleAdmin,
		ports.UpdateProductInput{Price: &price}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestProductService_Update_RevalidatesCategory(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())
	created := repo.add(&domain.Product{Title: "Gravel", Description: "bulk", Price: 30, Quantity: 100,
		Category: "Aggregates", Address: "x", PhoneNo: "y", SellerID: "seller_1"})

	bogus := "Antimatter"
	if _, err := svc.Update(context.Background(), created.ID, "seller_1", domain.RoleSeller,
		ports.UpdateProductInput{Category: &bogus}); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestProductService_Delete_OwnershipPolicy(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())
	created := repo.add(&domain.Product{Title: "Gravel", Description: "bulk", Price: 30, Quantity: 100,
		Category: "Aggregates", Address: "x", PhoneNo: "y", SellerID: "seller_1"})

	if err := svc.Delete(context.Background(), created.ID, "seller_2", domain.RoleSeller); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "admin_1", domain.RoleAdmin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "seller_1", domain.RoleSeller); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
}

func TestProductService_List(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())
	a := repo.add(&domain.Product{Title: "A", Description: "a", Category: "Wood", Address: "x", PhoneNo: "y", SellerID: "s1"})
	repo.add(&domain.Product{Title: "B", Description: "b", Category: "Wood", Address: "x", PhoneNo: "y", SellerID: "s2"})

	all, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	byID, err := svc.List(context.Background(), []string{a.ID})
	if err != nil {
		t.Fatalf("list by id: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != a.ID {
		t.Fatalf("unexpected filtered result: %+v", byID)
	}
}

func TestProductService_Categories(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	cats := svc.Categories()
	if len(cats) != 20 {
		t.Fatalf("expected 20 categories, got %d", len(cats))
	}
	if cats[0] != "Wood" || cats[len(cats)-1] != "Other" {
		t.Fatalf("unexpected category ordering: %v", cats)
	}
}
