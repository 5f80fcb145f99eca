// internal/models/product.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Product struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Info           string `json:"info,omitempty"`
	Image          string `json:"image"`
	Price          int64  `json:"price"`
	ShippingMethod string `json:"shipping_method,omitempty"`
	ShippingFee    int64  `json:"shipping_fee"`
	Stock          int    `json:"stock,omitempty"`
	Seller         Seller `json:"seller,omitempty"`
}

// ProductPage is the list payload of GET products/.
type ProductPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Product `json:"results"`
}

// Seller is the display name of a product's seller. The API has shipped it both as a
// plain string and as an object; both decode to the same name.
type Seller string

func (s *Seller) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = Seller(name)
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			StoreName string `json:"store_name"`
			Name      string `json:"name"`
			Username  string `json:"username"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		switch {
		case obj.StoreName != "":
			*s = Seller(obj.StoreName)
		case obj.Name != "":
			*s = Seller(obj.Name)
		default:
			*s = Seller(obj.Username)
		}
		return nil
	}

	// numeric seller ids carry no display name
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*s = ""
		return nil
	}
	return fmt.Errorf("unsupported seller value %s", data)
}
