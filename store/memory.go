package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
)

// MemoryStore keeps rows in process maps. It backs tests and the "memory"
// database driver for local runs; data is lost on restart.
//
// Stored values are never mutated in place: writes replace map entries with
// copies, so a transaction snapshot only needs fresh maps.
type MemoryStore struct {
	state *memState
	tx    *memData
}

var _ Store = (*MemoryStore)(nil)

type memState struct {
	mu   sync.Mutex
	data *memData
	last time.Time
}

type memData struct {
	users     map[string]models.User
	products  map[string]models.Product
	carts     map[string]models.Cart     // by user id
	wishlists map[string]models.Wishlist // by user id
	orders    map[string]models.Order
	reviews   map[string]models.Review
	promos    map[string]models.PromoCode
	addresses map[string]models.Address
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memState{data: &memData{
		users:     map[string]models.User{},
		products:  map[string]models.Product{},
		carts:     map[string]models.Cart{},
		wishlists: map[string]models.Wishlist{},
		orders:    map[string]models.Order{},
		reviews:   map[string]models.Review{},
		promos:    map[string]models.PromoCode{},
		addresses: map[string]models.Address{},
	}}}
}

func (d *memData) snapshot() *memData {
	return &memData{
		users:     copyMap(d.users),
		products:  copyMap(d.products),
		carts:     copyMap(d.carts),
		wishlists: copyMap(d.wishlists),
		orders:    copyMap(d.orders),
		reviews:   copyMap(d.reviews),
		promos:    copyMap(d.promos),
		addresses: copyMap(d.addresses),
	}
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStrings[S ~[]string](s S) S {
	if s == nil {
		return nil
	}
	return append(S{}, s...)
}

// acquire returns the data to operate on and its release func.
func (m *MemoryStore) acquire() (*memData, func()) {
	if m.tx != nil {
		return m.tx, func() {}
	}
	m.state.mu.Lock()
	return m.state.data, m.state.mu.Unlock
}

// now is strictly increasing so newest-first ordering is deterministic.
// Callers hold the lock.
func (m *MemoryStore) now() time.Time {
	t := time.Now()
	if !t.After(m.state.last) {
		t = m.state.last.Add(time.Microsecond)
	}
	m.state.last = t
	return t
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if m.tx != nil {
		return fn(m)
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	snap := m.state.data.snapshot()
	if err := fn(&MemoryStore{state: m.state, tx: snap}); err != nil {
		return err
	}
	m.state.data = snap
	return nil
}

// ─────────── Users ───────────

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	d, release := m.acquire()
	defer release()
	u, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryStore) UpsertUser(_ context.Context, u *models.User) error {
	d, release := m.acquire()
	defer release()
	for id, other := range d.users {
		if id != u.ID && u.Email != "" && other.Email == u.Email {
			return fmt.Errorf("upsert user %s: %w", u.ID, ErrDuplicate)
		}
	}
	now := m.now()
	if existing, ok := d.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	stored := *u
	stored.Cart, stored.Wishlist = nil, nil
	stored.Orders, stored.Reviews, stored.Addresses = nil, nil, nil
	d.users[u.ID] = stored
	return nil
}

func (m *MemoryStore) ListUsers(context.Context) ([]models.User, error) {
	d, release := m.acquire()
	defer release()
	users := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

// ─────────── Products ───────────

func cloneProduct(p models.Product) models.Product {
	p.Sizes = copyStrings(p.Sizes)
	p.Colors = copyStrings(p.Colors)
	p.Images = copyStrings(p.Images)
	p.Reviews = nil
	return p
}

func (m *MemoryStore) ListProducts(context.Context) ([]models.Product, error) {
	d, release := m.acquire()
	defer release()
	products := make([]models.Product, 0, len(d.products))
	for _, p := range d.products {
		products = append(products, cloneProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (m *MemoryStore) GetProduct(_ context.Context, id string) (*models.Product, error) {
	d, release := m.acquire()
	defer release()
	p, ok := d.products[id]
	if !ok {
		return nil, fmt.Errorf("get product %s: %w", id, ErrNotFound)
	}
	p = cloneProduct(p)
	return &p, nil
}

func (m *MemoryStore) GetProductsByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	d, release := m.acquire()
	defer release()
	var products []models.Product
	seen := map[string]bool{}
	for _, id := range ids {
		if p, ok := d.products[id]; ok && !seen[id] {
			seen[id] = true
			products = append(products, cloneProduct(p))
		}
	}
	return products, nil
}

func (m *MemoryStore) CreateProduct(_ context.Context, p *models.Product) error {
	d, release := m.acquire()
	defer release()
	if p.ID == "" {
		p.ID = newID()
	}
	if _, ok := d.products[p.ID]; ok {
		return fmt.Errorf("create product: %w", ErrDuplicate)
	}
	now := m.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	d.products[p.ID] = cloneProduct(*p)
	return nil
}

func (m *MemoryStore) UpdateProduct(_ context.Context, p *models.Product) error {
	d, release := m.acquire()
	defer release()
	existing, ok := d.products[p.ID]
	if !ok {
		return fmt.Errorf("update product %s: %w", p.ID, ErrNotFound)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = m.now()
	d.products[p.ID] = cloneProduct(*p)
	return nil
}

func (m *MemoryStore) DeleteProduct(_ context.Context, id string) error {
	d, release := m.acquire()
	defer release()
	if _, ok := d.products[id]; !ok {
		return fmt.Errorf("delete product %s: %w", id, ErrNotFound)
	}
	delete(d.products, id)
	for rid, r := range d.reviews {
		if r.ProductID == id {
			delete(d.reviews, rid)
		}
	}
	return nil
}

func (m *MemoryStore) DecrementStock(_ context.Context, id string, qty int) error {
	d, release := m.acquire()
	defer release()
	p, ok := d.products[id]
	if !ok || p.Stock < qty {
		return fmt.Errorf("decrement stock %s: %w", id, ErrInsufficientStock)
	}
	p = cloneProduct(p)
	p.Stock -= qty
	d.products[id] = p
	return nil
}

// ─────────── Carts & wishlists ───────────

func cloneCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return c
}

func (m *MemoryStore) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	d, release := m.acquire()
	defer release()
	c, ok := d.carts[userID]
	if !ok {
		return nil, fmt.Errorf("get cart: %w", ErrNotFound)
	}
	c = cloneCart(c)
	return &c, nil
}

func (m *MemoryStore) SaveCart(_ context.Context, c *models.Cart) error {
	d, release := m.acquire()
	defer release()
	if existing, ok := d.carts[c.UserID]; ok {
		c.ID = existing.ID
	} else if c.ID == "" {
		c.ID = newID()
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	c.UpdatedAt = m.now()
	d.carts[c.UserID] = cloneCart(*c)
	return nil
}

func (m *MemoryStore) ClearCart(_ context.Context, userID string) error {
	d, release := m.acquire()
	defer release()
	c, ok := d.carts[userID]
	if !ok {
		return nil
	}
	c.Items = []models.CartItem{}
	c.UpdatedAt = m.now()
	d.carts[userID] = c
	return nil
}

func (m *MemoryStore) GetWishlist(_ context.Context, userID string) (*models.Wishlist, error) {
	d, release := m.acquire()
	defer release()
	w, ok := d.wishlists[userID]
	if !ok {
		return nil, fmt.Errorf("get wishlist: %w", ErrNotFound)
	}
	w.ProductIDs = copyStrings(w.ProductIDs)
	return &w, nil
}

func (m *MemoryStore) SaveWishlist(_ context.Context, w *models.Wishlist) error {
	d, release := m.acquire()
	defer release()
	if existing, ok := d.wishlists[w.UserID]; ok {
		w.ID = existing.ID
	} else if w.ID == "" {
		w.ID = newID()
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []string{}
	}
	w.UpdatedAt = m.now()
	stored := *w
	stored.ProductIDs = copyStrings(w.ProductIDs)
	d.wishlists[w.UserID] = stored
	return nil
}

// ─────────── Orders ───────────

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem{}, o.Items...)
	if o.PromoCode != nil {
		code := *o.PromoCode
		o.PromoCode = &code
	}
	return o
}

func (m *MemoryStore) ListOrders(_ context.Context, f OrderFilter) ([]models.Order, error) {
	d, release := m.acquire()
	defer release()
	var orders []models.Order
	for _, o := range d.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		orders = append(orders, cloneOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if f.Limit > 0 && len(orders) > f.Limit {
		orders = orders[:f.Limit]
	}
	return orders, nil
}

func (m *MemoryStore) GetOrder(_ context.Context, id string) (*models.Order, error) {
	d, release := m.acquire()
	defer release()
	o, ok := d.orders[id]
	if !ok {
		return nil, fmt.Errorf("get order %s: %w", id, ErrNotFound)
	}
	o = cloneOrder(o)
	return &o, nil
}

func (m *MemoryStore) CreateOrder(_ context.Context, o *models.Order) error {
	d, release := m.acquire()
	defer release()
	for _, other := range d.orders {
		if other.OrderNumber == o.OrderNumber {
			return fmt.Errorf("create order %s: %w", o.OrderNumber, ErrDuplicate)
		}
	}
	if o.ID == "" {
		o.ID = newID()
	}
	now := m.now()
	o.CreatedAt, o.UpdatedAt = now, now
	d.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (m *MemoryStore) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	return m.updateOrder(id, func(o *models.Order) { o.Status = status })
}

func (m *MemoryStore) UpdatePaymentStatus(_ context.Context, id string, status models.PaymentStatus) (*models.Order, error) {
	return m.updateOrder(id, func(o *models.Order) { o.PaymentStatus = status })
}

func (m *MemoryStore) updateOrder(id string, apply func(o *models.Order)) (*models.Order, error) {
	d, release := m.acquire()
	defer release()
	o, ok := d.orders[id]
	if !ok {
		return nil, fmt.Errorf("update order %s: %w", id, ErrNotFound)
	}
	o = cloneOrder(o)
	apply(&o)
	o.UpdatedAt = m.now()
	d.orders[id] = o
	out := cloneOrder(o)
	return &out, nil
}

// ─────────── Reviews ───────────

func (m *MemoryStore) ListReviews(_ context.Context, productID string) ([]models.Review, error) {
	d, release := m.acquire()
	defer release()
	var reviews []models.Review
	for _, r := range d.reviews {
		if r.ProductID == productID {
			r.Images = copyStrings(r.Images)
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (m *MemoryStore) CreateReview(_ context.Context, r *models.Review) error {
	d, release := m.acquire()
	defer release()
	if r.ID == "" {
		r.ID = newID()
	}
	r.CreatedAt = m.now()
	stored := *r
	stored.Images = copyStrings(r.Images)
	d.reviews[r.ID] = stored
	return nil
}

// ─────────── Promo codes ───────────

func clonePromo(p models.PromoCode) models.PromoCode {
	if p.MaxUses != nil {
		n := *p.MaxUses
		p.MaxUses = &n
	}
	if p.ExpiresAt != nil {
		t := *p.ExpiresAt
		p.ExpiresAt = &t
	}
	return p
}

func (m *MemoryStore) GetPromoCode(_ context.Context, code string) (*models.PromoCode, error) {
	d, release := m.acquire()
	defer release()
	for _, p := range d.promos {
		if p.Code == code {
			p = clonePromo(p)
			return &p, nil
		}
	}
	return nil, fmt.Errorf("get promo code: %w", ErrNotFound)
}

func (m *MemoryStore) GetPromoCodeByID(_ context.Context, id string) (*models.PromoCode, error) {
	d, release := m.acquire()
	defer release()
	p, ok := d.promos[id]
	if !ok {
		return nil, fmt.Errorf("get promo code %s: %w", id, ErrNotFound)
	}
	p = clonePromo(p)
	return &p, nil
}

func (m *MemoryStore) ListPromoCodes(context.Context) ([]models.PromoCode, error) {
	d, release := m.acquire()
	defer release()
	codes := make([]models.PromoCode, 0, len(d.promos))
	for _, p := range d.promos {
		codes = append(codes, clonePromo(p))
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].CreatedAt.After(codes[j].CreatedAt) })
	return codes, nil
}

func (m *MemoryStore) CreatePromoCode(_ context.Context, p *models.PromoCode) error {
	d, release := m.acquire()
	defer release()
	for _, other := range d.promos {
		if other.Code == p.Code {
			return fmt.Errorf("create promo code %s: %w", p.Code, ErrDuplicate)
		}
	}
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = m.now()
	d.promos[p.ID] = clonePromo(*p)
	return nil
}

func (m *MemoryStore) UpdatePromoCode(_ context.Context, p *models.PromoCode) error {
	d, release := m.acquire()
	defer release()
	existing, ok := d.promos[p.ID]
	if !ok {
		return fmt.Errorf("update promo code %s: %w", p.ID, ErrNotFound)
	}
	for id, other := range d.promos {
		if id != p.ID && other.Code == p.Code {
			return fmt.Errorf("update promo code %s: %w", p.ID, ErrDuplicate)
		}
	}
	p.CreatedAt = existing.CreatedAt
	d.promos[p.ID] = clonePromo(*p)
	return nil
}

func (m *MemoryStore) IncrementPromoUse(_ context.Context, code string) error {
	d, release := m.acquire()
	defer release()
	for id, p := range d.promos {
		if p.Code != code {
			continue
		}
		if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
			break
		}
		p = clonePromo(p)
		p.CurrentUses++
		d.promos[id] = p
		return nil
	}
	return fmt.Errorf("increment promo code %s: %w", code, ErrPromoExhausted)
}

// ─────────── Addresses ───────────

func (m *MemoryStore) ListAddresses(_ context.Context, userID string) ([]models.Address, error) {
	d, release := m.acquire()
	defer release()
	var addrs []models.Address
	for _, a := range d.addresses {
		if a.UserID == userID {
			addrs = append(addrs, a)
		}
	}
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].IsDefault != addrs[j].IsDefault {
			return addrs[i].IsDefault
		}
		return addrs[i].CreatedAt.After(addrs[j].CreatedAt)
	})
	return addrs, nil
}

func (m *MemoryStore) GetAddress(_ context.Context, id string) (*models.Address, error) {
	d, release := m.acquire()
	defer release()
	a, ok := d.addresses[id]
	if !ok {
		return nil, fmt.Errorf("get address %s: %w", id, ErrNotFound)
	}
	return &a, nil
}

func (m *MemoryStore) CreateAddress(_ context.Context, a *models.Address) error {
	d, release := m.acquire()
	defer release()
	if a.ID == "" {
		a.ID = newID()
	}
	a.CreatedAt = m.now()
	d.addresses[a.ID] = *a
	return nil
}

func (m *MemoryStore) UpdateAddress(_ context.Context, a *models.Address) error {
	d, release := m.acquire()
	defer release()
	existing, ok := d.addresses[a.ID]
	if !ok {
		return fmt.Errorf("update address %s: %w", a.ID, ErrNotFound)
	}
	a.UserID, a.CreatedAt = existing.UserID, existing.CreatedAt
	d.addresses[a.ID] = *a
	return nil
}

func (m *MemoryStore) DeleteAddress(_ context.Context, id string) error {
	d, release := m.acquire()
	defer release()
	if _, ok := d.addresses[id]; !ok {
		return fmt.Errorf("delete address %s: %w", id, ErrNotFound)
	}
	delete(d.addresses, id)
	return nil
}

func (m *MemoryStore) ClearDefaultAddress(_ context.Context, userID, keepID string) error {
	d, release := m.acquire()
	defer release()
	for id, a := range d.addresses {
		if a.UserID == userID && id != keepID && a.IsDefault {
			a.IsDefault = false
			d.addresses[id] = a
		}
	}
	return nil
}

// ─────────── Stats ───────────

func (m *MemoryStore) Stats(context.Context) (models.AdminStats, error) {
	d, release := m.acquire()
	defer release()
	stats := models.AdminStats{
		TotalOrders:   int64(len(d.orders)),
		Revenue:       decimal.Zero,
		TotalProducts: int64(len(d.products)),
	}
	for _, o := range d.orders {
		if o.Status != models.OrderStatusCancelled {
			stats.Revenue = stats.Revenue.Add(o.TotalAmount)
		}
	}
	for _, u := range d.users {
		if !u.IsAdmin {
			stats.TotalCustomers++
		}
	}
	return stats, nil
}
