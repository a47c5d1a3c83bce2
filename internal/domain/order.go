package domain

// Order is a placed order as returned by the fashion backend.
type Order struct {
	OrderID    string   `json:"orderId"`
	UserID     string   `json:"userId"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Address    string   `json:"address"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	ProductIDs []string `json:"productIds"`
	TrackingID string   `json:"trackingId,omitempty"`
	Price      float64  `json:"price"`
	Status     string   `json:"status,omitempty"`
}
