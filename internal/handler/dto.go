package handler

import "catalog-service/internal/model"

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenRequest is the login form of POST /token. JSON bodies bind to the same fields.
type TokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// VendorResponse is the public view of a vendor
type VendorResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// CreateProductRequest is the body of POST /productos.
// VendedorEmail is accepted for compatibility and never used as the owner.
type CreateProductRequest struct {
	Nombre        string   `json:"nombre" validate:"required"`
	Precio        *float64 `json:"precio" validate:"required,gte=0"`
	ImagenURL     string   `json:"imagen_url" validate:"omitempty,url"`
	VendedorEmail *string  `json:"vendedor_email,omitempty"`
}

// UpdateProductRequest is the body of PUT /productos/:id. Absent fields are left untouched.
type UpdateProductRequest struct {
	Nombre *string  `json:"nombre" validate:"omitempty,min=1"`
	Precio *float64 `json:"precio" validate:"omitempty,gte=0"`
}

// Patch converts the request into a model patch
func (r UpdateProductRequest) Patch() model.ProductPatch {
	return model.ProductPatch{Name: r.Nombre, Price: r.Precio}
}

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID                   uint    `json:"id"`
	Nombre               string  `json:"nombre"`
	Precio               float64 `json:"precio"`
	DescripcionMarketing string  `json:"descripcion_marketing"`
	ImagenURL            string  `json:"imagen_url"`
	VendedorEmail        string  `json:"vendedor_email"`
}

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

func newVendorResponse(v *model.Vendor) VendorResponse {
	return VendorResponse{ID: v.ID, Email: v.Email}
}

func newProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		Nombre:               p.Name,
		Precio:               p.Price,
		DescripcionMarketing: p.Description,
		ImagenURL:            p.ImageURL,
		VendedorEmail:        p.OwnerEmail,
	}
}

func newProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	return out
}
