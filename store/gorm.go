package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

type gormStore struct {
	db   *gorm.DB
	inTx bool
}

var _ Store = (*gormStore)(nil)

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) q(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// locked adds FOR UPDATE when running inside WithTx.
func (s *gormStore) locked(ctx context.Context) *gorm.DB {
	q := s.q(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return ErrDuplicate
	}
	return err
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.q(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, inTx: true})
	})
}

// ─────────── Users ───────────

func (s *gormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.q(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, mapErr(err))
	}
	return &u, nil
}

func (s *gormStore) UpsertUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now()
	err := s.q(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "is_admin", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.ID, mapErr(err))
	}
	return nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.q(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ─────────── Products ───────────

func (s *gormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.q(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *gormStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.q(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, mapErr(err))
	}
	return &p, nil
}

func (s *gormStore) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := s.q(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return products, nil
}

func (s *gormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if err := s.q(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", mapErr(err))
	}
	return nil
}

func (s *gormStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := s.q(ctx).Model(p).Select("*").Omit(clause.Associations, "id", "created_at").Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update product %s: %w", p.ID, mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update product %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *gormStore) DeleteProduct(ctx context.Context, id string) error {
	res := s.q(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete product %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *gormStore) DecrementStock(ctx context.Context, id string, qty int) error {
	res := s.q(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return fmt.Errorf("decrement stock %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("decrement stock %s: %w", id, ErrInsufficientStock)
	}
	return nil
}

// ─────────── Carts & wishlists ───────────

func (s *gormStore) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	if err := s.locked(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, fmt.Errorf("get cart: %w", mapErr(err))
	}
	return &c, nil
}

func (s *gormStore) SaveCart(ctx context.Context, c *models.Cart) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	c.UpdatedAt = time.Now()
	err := s.q(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(c).Error
	if err != nil {
		return fmt.Errorf("save cart: %w", mapErr(err))
	}
	return nil
}

func (s *gormStore) ClearCart(ctx context.Context, userID string) error {
	err := s.q(ctx).Model(&models.Cart{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"items":      gorm.Expr("'[]'::jsonb"),
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *gormStore) GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := s.locked(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, fmt.Errorf("get wishlist: %w", mapErr(err))
	}
	return &w, nil
}

func (s *gormStore) SaveWishlist(ctx context.Context, w *models.Wishlist) error {
	if w.ID == "" {
		w.ID = newID()
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []string{}
	}
	w.UpdatedAt = time.Now()
	err := s.q(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_ids", "updated_at"}),
	}).Create(w).Error
	if err != nil {
		return fmt.Errorf("save wishlist: %w", mapErr(err))
	}
	return nil
}

// ─────────── Orders ───────────

func (s *gormStore) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	query := s.q(ctx).Order("created_at DESC")
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *gormStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := s.q(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, mapErr(err))
	}
	return &o, nil
}

func (s *gormStore) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = newID()
	}
	// nested Transaction becomes a savepoint inside WithTx
	err := s.q(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(o).Error
	})
	if err != nil {
		return fmt.Errorf("create order %s: %w", o.OrderNumber, mapErr(err))
	}
	return nil
}

func (s *gormStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	return s.updateOrder(ctx, id, "status", status)
}

func (s *gormStore) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Order, error) {
	return s.updateOrder(ctx, id, "payment_status", status)
}

func (s *gormStore) updateOrder(ctx context.Context, id, column string, value interface{}) (*models.Order, error) {
	res := s.q(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		column:       value,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update order %s: %w", id, ErrNotFound)
	}
	return s.GetOrder(ctx, id)
}

// ─────────── Reviews ───────────

func (s *gormStore) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.q(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *gormStore) CreateReview(ctx context.Context, r *models.Review) error {
	if r.ID == "" {
		r.ID = newID()
	}
	if err := s.q(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create review: %w", mapErr(err))
	}
	return nil
}

// ─────────── Promo codes ───────────

func (s *gormStore) GetPromoCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var p models.PromoCode
	if err := s.locked(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		return nil, fmt.Errorf("get promo code: %w", mapErr(err))
	}
	return &p, nil
}

func (s *gormStore) GetPromoCodeByID(ctx context.Context, id string) (*models.PromoCode, error) {
	var p models.PromoCode
	if err := s.locked(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get promo code %s: %w", id, mapErr(err))
	}
	return &p, nil
}

func (s *gormStore) ListPromoCodes(ctx context.Context) ([]models.PromoCode, error) {
	var codes []models.PromoCode
	if err := s.q(ctx).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	return codes, nil
}

func (s *gormStore) CreatePromoCode(ctx context.Context, p *models.PromoCode) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if err := s.q(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create promo code %s: %w", p.Code, mapErr(err))
	}
	return nil
}

func (s *gormStore) UpdatePromoCode(ctx context.Context, p *models.PromoCode) error {
	res := s.q(ctx).Model(p).Select("*").Omit("id", "created_at").Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update promo code %s: %w", p.ID, mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update promo code %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *gormStore) IncrementPromoUse(ctx context.Context, code string) error {
	res := s.q(ctx).Model(&models.PromoCode{}).
		Where("code = ? AND (max_uses IS NULL OR current_uses < max_uses)", code).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment promo code %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("increment promo code %s: %w", code, ErrPromoExhausted)
	}
	return nil
}

// ─────────── Addresses ───────────

func (s *gormStore) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	var addrs []models.Address
	if err := s.q(ctx).Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&addrs).Error; err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addrs, nil
}

func (s *gormStore) GetAddress(ctx context.Context, id string) (*models.Address, error) {
	var a models.Address
	if err := s.q(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get address %s: %w", id, mapErr(err))
	}
	return &a, nil
}

func (s *gormStore) CreateAddress(ctx context.Context, a *models.Address) error {
	if a.ID == "" {
		a.ID = newID()
	}
	if err := s.q(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create address: %w", mapErr(err))
	}
	return nil
}

func (s *gormStore) UpdateAddress(ctx context.Context, a *models.Address) error {
	res := s.q(ctx).Model(a).Select("*").Omit("id", "user_id", "created_at").Updates(a)
	if res.Error != nil {
		return fmt.Errorf("update address %s: %w", a.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update address %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

func (s *gormStore) DeleteAddress(ctx context.Context, id string) error {
	res := s.q(ctx).Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete address %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete address %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *gormStore) ClearDefaultAddress(ctx context.Context, userID, keepID string) error {
	err := s.q(ctx).Model(&models.Address{}).
		Where("user_id = ? AND id <> ? AND is_default", userID, keepID).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}

// ─────────── Stats ───────────

func (s *gormStore) Stats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	var agg struct {
		TotalOrders int64
		Revenue     decimal.Decimal
	}
	err := s.q(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_amount) FILTER (WHERE status <> ?), 0) AS revenue", models.OrderStatusCancelled).
		Scan(&agg).Error
	if err != nil {
		return stats, fmt.Errorf("order stats: %w", err)
	}
	stats.TotalOrders = agg.TotalOrders
	stats.Revenue = agg.Revenue

	if err := s.q(ctx).Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return stats, fmt.Errorf("count products: %w", err)
	}
	if err := s.q(ctx).Model(&models.User{}).Where("is_admin = ?", false).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, fmt.Errorf("count customers: %w", err)
	}
	return stats, nil
}
