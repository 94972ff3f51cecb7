package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is the single persisted resource. ID is assigned by the store on
// creation and never changes afterwards.
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null"`
	Description *string `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
}

// ProductInput carries the replaceable fields of a Product.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
}

// Apply overwrites every field of p except ID.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
}
