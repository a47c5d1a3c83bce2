package domain

// Complaint status constants.
const (
	ComplaintStatusPending  = "Pending"
	ComplaintStatusResolved = "Resolved"
)

// Complaint is a customer complaint filed through the contact form.
type Complaint struct {
	ComplaintNumber string `json:"complaintNumber"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Message         string `json:"message"`
	UserType        string `json:"userType,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt,omitempty"`
}
