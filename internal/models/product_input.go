package models

import "github.com/shopspring/decimal"

// ProductInput is the body accepted when creating a product. The name, price
// and quantity keys are required; the column keys are optional and win over
// them when both are sent. A zero price or quantity counts as present.
type ProductInput struct {
	Product
	InputName     *string          `json:"name,omitempty" validate:"required,min=1"`
	InputPrice    *decimal.Decimal `json:"price,omitempty" validate:"required"`
	InputQuantity *int64           `json:"quantity,omitempty" validate:"required"`
}

// FillColumns copies name, price and quantity into the matching columns that
// the body left unset.
func (in *ProductInput) FillColumns() {
	if in.Name == nil {
		in.Name = in.InputName
	}
	if in.Price == nil {
		in.Price = in.InputPrice
	}
	if in.Quantity == nil {
		in.Quantity = in.InputQuantity
	}
}
