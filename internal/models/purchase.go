// internal/models/purchase.go
package models

// PurchaseDraft is the single-slot order payload staged before the order page.
type PurchaseDraft struct {
	Products []PurchaseLine `json:"products"`
}

type PurchaseLine struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Seller      Seller `json:"seller"`
	Quantity    int    `json:"quantity"`
	ShippingFee int64  `json:"shipping_fee"`
}

// NewPurchaseDraft stages one line for product at quantity.
func NewPurchaseDraft(p *Product, quantity int) *PurchaseDraft {
	return &PurchaseDraft{
		Products: []PurchaseLine{{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Image:       p.Image,
			Seller:      p.Seller,
			Quantity:    ClampQuantity(quantity),
			ShippingFee: p.ShippingFee,
		}},
	}
}

// Total is the sum of line prices plus shipping.
func (d *PurchaseDraft) Total() int64 {
	var total int64
	for _, line := range d.Products {
		total += line.Price*int64(line.Quantity) + line.ShippingFee
	}
	return total
}
