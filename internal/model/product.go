package model

import "time"

// Product represents a vendor listing. OwnerEmail references Vendor.Email without a
// foreign key; ownership is enforced by filtering every write on the acting vendor's email.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"nombre" gorm:"column:nombre;type:varchar(255);index;not null"`
	Price       float64   `json:"precio" gorm:"column:precio;not null"`
	Description string    `json:"descripcion_marketing" gorm:"column:descripcion_marketing;type:text"`
	ImageURL    string    `json:"imagen_url" gorm:"column:imagen_url;type:text"`
	OwnerEmail  string    `json:"vendedor_email" gorm:"column:vendedor_email;type:varchar(255);index;not null"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName keeps the table name used by the existing deployment
func (Product) TableName() string {
	return "productos"
}

// ProductPatch carries the fields of a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name  *string
	Price *float64
}

// IsEmpty reports whether the patch changes nothing
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil
}

// Columns returns the column assignments for the fields present in the patch
func (p ProductPatch) Columns() map[string]interface{} {
	columns := make(map[string]interface{}, 2)
	if p.Name != nil {
		columns["nombre"] = *p.Name
	}
	if p.Price != nil {
		columns["precio"] = *p.Price
	}
	return columns
}

// Apply copies the present fields onto product
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
}
