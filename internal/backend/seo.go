package backend

import (
	"context"
	"net/url"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

type seoResponse struct {
	Components []domain.SEOPage `json:"components"`
}

// GetSEOComponents fetches the meta tags for one storefront page, or for
// every page when pageName is empty.
func (c *Client) GetSEOComponents(ctx context.Context, pageName string) ([]domain.SEOPage, error) {
	path := "/seo/getSEOComponents"
	if pageName != "" {
		path += "?pageName=" + url.QueryEscape(pageName)
	}
	var out seoResponse
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Components, nil
}

// SaveSEOComponent creates the meta tags for a page.
func (c *Client) SaveSEOComponent(ctx context.Context, page domain.SEOPage) error {
	if page.PageName == "" {
		return apperrors.InvalidInput("page name is required")
	}
	return c.post(ctx, "/seo/saveSEOComponents", page, nil)
}

// EditSEOComponent updates the meta tags for a page.
func (c *Client) EditSEOComponent(ctx context.Context, page domain.SEOPage) error {
	if page.PageName == "" {
		return apperrors.InvalidInput("page name is required")
	}
	return c.put(ctx, "/seo/editSEOComponents", page, nil)
}

// DeleteSEOComponent removes the meta tags for a page.
func (c *Client) DeleteSEOComponent(ctx context.Context, pageName string) error {
	if pageName == "" {
		return apperrors.InvalidInput("page name is required")
	}
	return c.delete(ctx, "/seo/deleteSEOComponents?pageName="+url.QueryEscape(pageName), nil, nil)
}
