package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	pkgkafka "github.com/thelegendaryarticuno/myfashion/pkg/kafka"
	"github.com/thelegendaryarticuno/myfashion/pkg/logger"
)

// Kafka topics for storefront activity events.
const (
	TopicProductViewed  = "myfashion.product.viewed"
	TopicSellerLoggedIn = "myfashion.seller.logged_in"
	TopicCartItemAdded  = "myfashion.cart.item_added"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeSeller  = "seller"
	AggregateTypeCart    = "cart"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront-bff"

// ProductViewedData is the payload for a product.viewed event.
type ProductViewedData struct {
	ProductID string  `json:"product_id"`
	ShopperID string  `json:"shopper_id,omitempty"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}

// SellerLoggedInData is the payload for a seller.logged_in event.
type SellerLoggedInData struct {
	SellerID string `json:"seller_id"`
	Email    string `json:"email"`
}

// CartItemAddedData is the payload for a cart.item_added event.
type CartItemAddedData struct {
	ShopperID string `json:"shopper_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Producer publishes storefront activity events to Kafka. Publishing is
// best-effort; callers log failures and carry on, a lost activity event
// never fails a shopper request.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an activity event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductViewed publishes a product.viewed event.
func (p *Producer) PublishProductViewed(ctx context.Context, product *domain.Product, shopperID string) error {
	data := ProductViewedData{
		ProductID: product.ProductID,
		ShopperID: shopperID,
		Category:  product.Category,
		Price:     product.Price,
	}

	event, err := pkgkafka.NewEvent(TopicProductViewed, product.ProductID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create product.viewed event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicProductViewed, event); err != nil {
		return fmt.Errorf("publish product.viewed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.viewed event",
		slog.String("product_id", product.ProductID),
	)
	return nil
}

// PublishSellerLoggedIn publishes a seller.logged_in event.
func (p *Producer) PublishSellerLoggedIn(ctx context.Context, sellerID, email string) error {
	data := SellerLoggedInData{SellerID: sellerID, Email: email}

	event, err := pkgkafka.NewEvent(TopicSellerLoggedIn, sellerID, AggregateTypeSeller, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create seller.logged_in event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicSellerLoggedIn, event); err != nil {
		return fmt.Errorf("publish seller.logged_in event: %w", err)
	}

	p.logger.DebugContext(ctx, "published seller.logged_in event",
		slog.String("seller_id", sellerID),
	)
	return nil
}

// PublishCartItemAdded publishes a cart.item_added event.
func (p *Producer) PublishCartItemAdded(ctx context.Context, shopperID, productID string, quantity int) error {
	data := CartItemAddedData{ShopperID: shopperID, ProductID: productID, Quantity: quantity}

	event, err := pkgkafka.NewEvent(TopicCartItemAdded, shopperID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.item_added event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCartItemAdded, event); err != nil {
		return fmt.Errorf("publish cart.item_added event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.item_added event",
		slog.String("shopper_id", shopperID),
		slog.String("product_id", productID),
	)
	return nil
}
