package backend

import (
	"context"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

type complaintListResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
}

// GetComplaints fetches all complaints for the dashboard.
func (c *Client) GetComplaints(ctx context.Context) ([]domain.Complaint, error) {
	var out complaintListResponse
	if err := c.get(ctx, "/get-complaints", &out); err != nil {
		return nil, err
	}
	return out.Complaints, nil
}

// PostComplaint files a new complaint from the storefront contact form.
func (c *Client) PostComplaint(ctx context.Context, complaint domain.Complaint) error {
	if complaint.Email == "" || complaint.Message == "" {
		return apperrors.InvalidInput("email and message are required")
	}
	return c.post(ctx, "/post-complaints", complaint, nil)
}

// UpdateComplaintStatus marks a complaint pending or resolved.
func (c *Client) UpdateComplaintStatus(ctx context.Context, complaintID, status string) error {
	if complaintID == "" {
		return apperrors.InvalidInput("complaint id is required")
	}
	return c.put(ctx, "/update-complaint-status", map[string]string{
		"complaintId": complaintID,
		"status":      status,
	}, nil)
}
