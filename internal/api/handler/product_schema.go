package handler

import "github.com/productmgmt/product-api/internal/core/domain"

// productRequest is the body of POST and PUT /products. Fields are taken as
// sent; no validation beyond JSON decoding.
type productRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

func (r productRequest) toInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
	}
}
