package domain

// Account status constants.
const (
	AccountStatusOpen      = "open"
	AccountStatusSuspended = "suspended"
	AccountStatusBlocked   = "blocked"
)

// Customer is a registered shopper account as returned by the fashion
// backend's user listing.
type Customer struct {
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	AccountStatus string `json:"accountStatus"`
	CreatedAt     string `json:"createdAt,omitempty"`
}
