package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"catalog-service/internal/apperror"
	"catalog-service/internal/middleware"
	"catalog-service/internal/service"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandler serves the product catalog. Every route sits behind the auth middleware.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts handles GET /productos?offset=&limit=
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	offset, limit := 0, service.DefaultPageSize
	if err := echo.QueryParamsBinder(c).
		Int("offset", &offset).
		Int("limit", &limit).
		BindError(); err != nil {
		return respondError(c, fmt.Errorf("%w: offset and limit must be integers", apperror.ErrValidation))
	}

	products, err := h.products.List(c.Request().Context(), offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Products retrieved successfully",
		zap.Int("offset", offset),
		zap.Int("limit", limit),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, newProductResponses(products))
}

// CreateProduct handles POST /productos. The owner is always the authenticated vendor.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	vendor, ok := middleware.CurrentVendor(c)
	if !ok {
		return respondError(c, apperror.ErrUnauthorized)
	}

	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Warn("Invalid product request", zap.Error(err))
		return respondError(c, err)
	}

	if req.VendedorEmail != nil && *req.VendedorEmail != vendor.Email {
		log.Warn("Ignoring vendedor_email from request body",
			zap.String("requested_owner", *req.VendedorEmail),
			zap.String("owner_email", vendor.Email))
	}

	product, err := h.products.Create(c.Request().Context(), vendor, service.NewProduct{
		Name:     req.Nombre,
		Price:    *req.Precio,
		ImageURL: req.ImagenURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newProductResponse(product))
}

// UpdateProduct handles PUT /productos/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	vendor, ok := middleware.CurrentVendor(c)
	if !ok {
		return respondError(c, apperror.ErrUnauthorized)
	}

	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Warn("Invalid product update", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, err)
	}

	product, err := h.products.Update(c.Request().Context(), vendor, id, req.Patch())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newProductResponse(product))
}

// DeleteProduct handles DELETE /productos/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	vendor, ok := middleware.CurrentVendor(c)
	if !ok {
		return respondError(c, apperror.ErrUnauthorized)
	}

	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.products.Delete(c.Request().Context(), vendor, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Producto eliminado exitosamente"})
}

func productID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: product id must be a positive integer", apperror.ErrValidation)
	}
	return uint(id), nil
}
