package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
	"github.com/thelegendaryarticuno/myfashion/pkg/httpclient"
)

type productListResponse struct {
	Success  bool             `json:"success"`
	Products []domain.Product `json:"products"`
}

type productResponse struct {
	Success bool           `json:"success"`
	Product domain.Product `json:"product"`
}

// GetProducts fetches the full catalog in one shot. The backend returns the
// whole list unpaginated; windowing happens in the catalog view.
func (c *Client) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var out productListResponse
	if err := c.get(ctx, "/get-product", &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "catalog fetch reported unsuccessful")
	}
	return out.Products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	var out productResponse
	if err := c.post(ctx, "/"+url.PathEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, apperrors.NotFound("product", productID)
	}
	return &out.Product, nil
}

// GetProductsByCategory fetches the products of one category, used for the
// related items strip on the product page.
func (c *Client) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}
	var out productListResponse
	if err := c.post(ctx, "/product/category", map[string]string{"category": category}, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	return c.post(ctx, "/delete-product", map[string]string{"productId": productID}, nil)
}

// StockUpdate carries the editable fields of the dashboard's inventory row.
type StockUpdate struct {
	ProductID    string   `json:"productId" validate:"required"`
	Name         string   `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Category     string   `json:"category,omitempty"`
	InStockValue *int     `json:"inStockValue,omitempty"`
	Visibility   string   `json:"visibility,omitempty"`
}

// UpdateStock pushes an inventory row edit to the backend.
func (c *Client) UpdateStock(ctx context.Context, update StockUpdate) error {
	if update.ProductID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	return c.put(ctx, "/instock-update", update, nil)
}

type imageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage streams a product image to the backend's upload endpoint and
// returns the hosted URL. The caller supplies the multipart body and its
// content type.
func (c *Client) UploadImage(ctx context.Context, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/image-upload", body)
	if err != nil {
		return "", fmt.Errorf("create image upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", httpclient.ParseResponseError(resp, upstreamName)
	}
	defer func() { _ = resp.Body.Close() }()

	var out imageUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode image upload response: %w", err)
	}
	return out.ImageURL, nil
}
