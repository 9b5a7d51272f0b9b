package model

import "time"

// Vendor is a seller account. Email is the identity and is never changed after registration.
type Vendor struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"column:hashed_password;type:varchar(255);not null"`
	CreatedAt      time.Time `json:"-"`
}

// TableName keeps the table name used by the existing deployment
func (Vendor) TableName() string {
	return "vendedores"
}
