// Package store persists the shop's rows. Every user-keyed collection is read
// from the backing store per call; nothing is cached between requests.
package store

import (
	"context"
	"errors"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate key")
	ErrPromoExhausted    = errors.New("promo code usage limit reached")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// OrderFilter narrows ListOrders. An empty UserID lists every order.
type OrderFilter struct {
	UserID string
	Status models.OrderStatus
	Limit  int
}

type Store interface {
	Ping(ctx context.Context) error

	// WithTx runs fn atomically. Reads of carts, wishlists and promo codes
	// through the tx store lock the row until fn returns.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	GetUser(ctx context.Context, id string) (*models.User, error)
	UpsertUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)

	// ListProducts returns the catalog newest first.
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	// DecrementStock fails with ErrInsufficientStock when stock < qty.
	DecrementStock(ctx context.Context, id string, qty int) error

	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, c *models.Cart) error
	ClearCart(ctx context.Context, userID string) error

	GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	SaveWishlist(ctx context.Context, w *models.Wishlist) error

	// ListOrders returns newest first.
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	// CreateOrder fails with ErrDuplicate on an order number clash and leaves
	// an enclosing transaction usable.
	CreateOrder(ctx context.Context, o *models.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Order, error)

	// ListReviews returns newest first.
	ListReviews(ctx context.Context, productID string) ([]models.Review, error)
	CreateReview(ctx context.Context, r *models.Review) error

	GetPromoCode(ctx context.Context, code string) (*models.PromoCode, error)
	GetPromoCodeByID(ctx context.Context, id string) (*models.PromoCode, error)
	ListPromoCodes(ctx context.Context) ([]models.PromoCode, error)
	CreatePromoCode(ctx context.Context, p *models.PromoCode) error
	UpdatePromoCode(ctx context.Context, p *models.PromoCode) error
	// IncrementPromoUse bumps current_uses only while it is below max_uses.
	IncrementPromoUse(ctx context.Context, code string) error

	ListAddresses(ctx context.Context, userID string) ([]models.Address, error)
	GetAddress(ctx context.Context, id string) (*models.Address, error)
	CreateAddress(ctx context.Context, a *models.Address) error
	UpdateAddress(ctx context.Context, a *models.Address) error
	DeleteAddress(ctx context.Context, id string) error
	// ClearDefaultAddress unsets is_default on the user's addresses except keepID.
	ClearDefaultAddress(ctx context.Context, userID, keepID string) error

	Stats(ctx context.Context) (models.AdminStats, error)
}

func newID() string {
	return uuid.NewString()
}
