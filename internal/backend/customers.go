package backend

import (
	"context"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

type customerListResponse struct {
	Users []domain.Customer `json:"users"`
}

// GetCustomers fetches all registered shoppers for the dashboard.
func (c *Client) GetCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out customerListResponse
	if err := c.get(ctx, "/get-user", &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// UpdateAccountStatus opens, suspends or blocks a shopper account.
func (c *Client) UpdateAccountStatus(ctx context.Context, userID, status string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	switch status {
	case domain.AccountStatusOpen, domain.AccountStatusSuspended, domain.AccountStatusBlocked:
	default:
		return apperrors.InvalidInput("account status must be open, suspended or blocked")
	}
	return c.put(ctx, "/update-account-status", map[string]string{
		"userId":        userID,
		"accountStatus": status,
	}, nil)
}
