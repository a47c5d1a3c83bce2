package domain

// Review is a product review as returned by the fashion backend.
type Review struct {
	ProductID string  `json:"productId"`
	UserID    string  `json:"userId,omitempty"`
	Name      string  `json:"name,omitempty"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt,omitempty"`
	Verified  bool    `json:"verified,omitempty"`
}
