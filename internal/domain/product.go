package domain

import (
	"encoding/json"
	"time"
)

// Product is a catalog product as returned by the fashion backend. The
// storefront only ever reads a snapshot of these; all mutation goes back
// through the backend.
type Product struct {
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	InStockValue   int       `json:"inStockValue"`
	SoldStockValue int       `json:"soldStockValue"`
	Img            ImageList `json:"img"`
	Rating         float64   `json:"rating"`
	Description    string    `json:"description"`
	Visibility     string    `json:"visibility,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// InStock reports whether the product has any stock left.
func (p *Product) InStock() bool {
	return p.InStockValue > 0
}

// PrimaryImage returns the first image URL, or "" when none are set.
func (p *Product) PrimaryImage() string {
	if len(p.Img) == 0 {
		return ""
	}
	return p.Img[0]
}

// ImageList tolerates the backend returning either a single image URL string
// or a list of URLs for the same field.
type ImageList []string

// UnmarshalJSON accepts both `"url"` and `["url", ...]`.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = []string{one}
	return nil
}
