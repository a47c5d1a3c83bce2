package backend

import (
	"context"
	"strings"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

const msgNoReviews = "No reviews found for this product"

type reviewListResponse struct {
	Message string          `json:"message"`
	Reviews []domain.Review `json:"reviews"`
}

// FindReviews fetches the reviews for one product. The backend reports an
// empty result as a message rather than an empty list; both come back as an
// empty slice here.
func (c *Client) FindReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	var out reviewListResponse
	err := c.post(ctx, "/find-reviews", map[string]string{"productId": productID}, &out)
	if err != nil {
		if strings.Contains(upstreamMessage(err), msgNoReviews) {
			return []domain.Review{}, nil
		}
		return nil, err
	}
	if strings.Contains(out.Message, msgNoReviews) {
		return []domain.Review{}, nil
	}
	return out.Reviews, nil
}

// GetReviews fetches every review across products, for the dashboard.
func (c *Client) GetReviews(ctx context.Context) ([]domain.Review, error) {
	var out reviewListResponse
	if err := c.get(ctx, "/get-reviews", &out); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}
