package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	"github.com/thelegendaryarticuno/myfashion/pkg/pagination"
)

type mockAdminBackend struct {
	mock.Mock
}

func (m *mockAdminBackend) GetProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockAdminBackend) DeleteProduct(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockAdminBackend) UpdateStock(ctx context.Context, update backend.StockUpdate) error {
	return m.Called(ctx, update).Error(0)
}

func (m *mockAdminBackend) UploadImage(ctx context.Context, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *mockAdminBackend) GetOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockAdminBackend) GetCoupons(ctx context.Context) ([]domain.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *mockAdminBackend) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *mockAdminBackend) UpdateCouponStatus(ctx context.Context, code, status string) error {
	return m.Called(ctx, code, status).Error(0)
}

func (m *mockAdminBackend) DeleteCoupon(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *mockAdminBackend) GetComplaints(ctx context.Context) ([]domain.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *mockAdminBackend) UpdateComplaintStatus(ctx context.Context, complaintID, status string) error {
	return m.Called(ctx, complaintID, status).Error(0)
}

func (m *mockAdminBackend) GetCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockAdminBackend) UpdateAccountStatus(ctx context.Context, userID, status string) error {
	return m.Called(ctx, userID, status).Error(0)
}

func (m *mockAdminBackend) GetReviews(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockAdminBackend) GetSEOComponents(ctx context.Context, pageName string) ([]domain.SEOPage, error) {
	args := m.Called(ctx, pageName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SEOPage), args.Error(1)
}

func (m *mockAdminBackend) SaveSEOComponent(ctx context.Context, page domain.SEOPage) error {
	return m.Called(ctx, page).Error(0)
}

func (m *mockAdminBackend) EditSEOComponent(ctx context.Context, page domain.SEOPage) error {
	return m.Called(ctx, page).Error(0)
}

func (m *mockAdminBackend) DeleteSEOComponent(ctx context.Context, pageName string) error {
	return m.Called(ctx, pageName).Error(0)
}

func (m *mockAdminBackend) VerifySeller(ctx context.Context, sellerID string) (bool, error) {
	args := m.Called(ctx, sellerID)
	return args.Bool(0), args.Error(1)
}

func newAdminService(b *mockAdminBackend) *AdminService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAdminService(b, logger)
}

func TestListProducts_LowStockFirst(t *testing.T) {
	b := new(mockAdminBackend)
	svc := newAdminService(b)

	b.On("GetProducts", mock.Anything).Return([]domain.Product{
		{ProductID: "p1", InStockValue: 40},
		{ProductID: "p2", InStockValue: 2},
		{ProductID: "p3", InStockValue: 15},
	}, nil)

	result, err := svc.ListProducts(context.Background(), pagination.DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	require.Len(t, result.Data, 3)
	assert.Equal(t, "p2", result.Data[0].ProductID)
	assert.Equal(t, "p3", result.Data[1].ProductID)
	assert.Equal(t, "p1", result.Data[2].ProductID)
}

func TestListProducts_Paged(t *testing.T) {
	b := new(mockAdminBackend)
	svc := newAdminService(b)

	products := make([]domain.Product, 25)
	for i := range products {
		products[i] = domain.Product{ProductID: "p", InStockValue: i}
	}
	b.On("GetProducts", mock.Anything).Return(products, nil)

	params := pagination.Params{Page: 2, PerPage: 10, Offset: 10}
	result, err := svc.ListProducts(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 25, result.TotalCount)
	assert.Len(t, result.Data, 10)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestListOrders_NewestFirst(t *testing.T) {
	b := new(mockAdminBackend)
	svc := newAdminService(b)

	b.On("GetOrders", mock.Anything).Return([]domain.Order{
		{OrderID: "o1", Date: "2024-03-01", Time: "10:00"},
		{OrderID: "o2", Date: "2024-03-05", Time: "09:00"},
		{OrderID: "o3", Date: "2024-03-05", Time: "18:30"},
	}, nil)

	result, err := svc.ListOrders(context.Background(), pagination.DefaultParams())

	require.NoError(t, err)
	require.Len(t, result.Data, 3)
	assert.Equal(t, "o3", result.Data[0].OrderID)
	assert.Equal(t, "o2", result.Data[1].OrderID)
	assert.Equal(t, "o1", result.Data[2].OrderID)
}

func TestListComplaints_PendingFirst(t *testing.T) {
	b := new(mockAdminBackend)
	svc := newAdminService(b)

	b.On("GetComplaints", mock.Anything).Return([]domain.Complaint{
		{ComplaintNumber: "c1", Status: domain.ComplaintStatusResolved},
		{ComplaintNumber: "c2", Status: domain.ComplaintStatusPending},
		{ComplaintNumber: "c3", Status: domain.ComplaintStatusResolved},
		{ComplaintNumber: "c4", Status: domain.ComplaintStatusPending},
	}, nil)

	result, err := svc.ListComplaints(context.Background(), pagination.DefaultParams())

	require.NoError(t, err)
	require.Len(t, result.Data, 4)
	assert.Equal(t, "c2", result.Data[0].ComplaintNumber)
	assert.Equal(t, "c4", result.Data[1].ComplaintNumber)
	assert.Equal(t, "c1", result.Data[2].ComplaintNumber)
	assert.Equal(t, "c3", result.Data[3].ComplaintNumber)
}

func TestListProducts_BackendError(t *testing.T) {
	b := new(mockAdminBackend)
	svc := newAdminService(b)

	b.On("GetProducts", mock.Anything).Return(nil, assert.AnError)

	_, err := svc.ListProducts(context.Background(), pagination.DefaultParams())

	assert.Error(t, err)
}

func TestVerifySeller_Passthrough(t *testing.T) {
	b := new(mockAdminBackend)
	svc := newAdminService(b)

	b.On("VerifySeller", mock.Anything, "seller-1").Return(true, nil)

	ok, err := svc.VerifySeller(context.Background(), "seller-1")

	require.NoError(t, err)
	assert.True(t, ok)
}
