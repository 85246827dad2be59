package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/material-mover/marketplace-api/internal/api/metrics"
	"github.com/material-mover/marketplace-api/internal/core/ports"
)

// ProductHandler handles listing CRUD and search.
type ProductHandler struct {
	products ports.ProductService
	search   ports.SearchService
}

func NewProductHandler(products ports.ProductService, search ports.SearchService) *ProductHandler {
	return &ProductHandler{products: products, search: search}
}

// Search resolves a free-text query via the delegate with local fallback.
//
// @Summary      Search products
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Search query"
// @Success      200   {object}  searchResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/products/search [post]
func (h *ProductHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	result, err := h.search.Resolve(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}

	metrics.SearchesTotal.WithLabelValues(result.Source).Inc()
	return c.JSON(http.StatusOK, searchResponse{
		Products: toProductResponses(result.Products, hasIdentity(c)),
		Source:   result.Source,
	})
}

// Categories returns the fixed material category list.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, categoriesResponse{Categories: h.products.Categories()})
}

// List returns products by ids, or the first 50 when no ids are given.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        ids  query     string  false  "Comma-separated product ids"
// @Success      200  {object}  productListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var ids []string
	for _, id := range strings.Split(c.QueryParam("ids"), ",") {
		if id != "" {
			ids = append(ids, id)
		}
	}

	products, err := h.products.List(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Products: toProductResponses(products, hasIdentity(c))})
}

// ListMine returns the caller's own listings.
//
// @Summary      List own products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/products/my [get]
func (h *ProductHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	products, err := h.products.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Products: toProductResponses(products, true)})
}

// Get returns a single product. Contact fields are redacted for anonymous
// callers.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product, hasIdentity(c)))
}

// Create adds a new listing owned by the caller.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Create(c.Request().Context(), ports.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		Category:    req.Category,
		Address:     req.Address,
		PhoneNo:     req.PhoneNo,
		Image:       req.Image,
		SellerID:    userID,
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(product.Category).Inc()
	return c.JSON(http.StatusCreated, productEnvelope{Product: toProductResponse(product, true)})
}

// Update applies a partial update to an owned listing.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productEnvelope
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Update(c.Request().Context(), c.Param("id"), userID, role, ports.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productEnvelope{Product: toProductResponse(product, true)})
}

// Delete removes an owned listing.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
