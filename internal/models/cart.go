// internal/models/cart.go
package models

type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Check     bool  `json:"check"`
}

// Cart keeps insertion order and holds at most one item per product.
type Cart []CartItem

// Merge adds quantity of productID. An existing line accumulates (capped at MaxQuantity)
// and is re-selected; otherwise a new line is appended. It reports whether a line existed.
func (c *Cart) Merge(productID int64, quantity int) bool {
	quantity = ClampQuantity(quantity)

	for i := range *c {
		item := &(*c)[i]
		if item.ProductID == productID {
			item.Quantity = ClampQuantity(item.Quantity + quantity)
			item.Check = true
			return true
		}
	}

	*c = append(*c, CartItem{ProductID: productID, Quantity: quantity, Check: true})
	return false
}

// Normalize folds duplicate product lines written by older clients into the first one.
func (c Cart) Normalize() Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.Quantity < MinQuantity {
			continue
		}
		check := item.Check
		if out.Merge(item.ProductID, item.Quantity) {
			continue
		}
		out[len(out)-1].Check = check
	}
	return out
}
