package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/nilecart/storefront_api/internal/cache"
	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/repository"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// In-memory fakes shared by the service tests.

type recordedChange struct {
	kind     models.NotificationType
	entityID int
	name     string
	status   workflow.Status
}

type fakeRecorder struct {
	submissions   []recordedChange
	statusChanges []recordedChange
}

func (r *fakeRecorder) RecordSubmission(ctx context.Context, kind models.NotificationType, entityID int, name string) {
	r.submissions = append(r.submissions, recordedChange{kind: kind, entityID: entityID, name: name})
}

func (r *fakeRecorder) RecordStatusChange(ctx context.Context, kind models.NotificationType, entityID int, name string, status workflow.Status) {
	r.statusChanges = append(r.statusChanges, recordedChange{kind: kind, entityID: entityID, name: name, status: status})
}

type fakeBrandStore struct {
	brands     map[int]*models.Brand
	nextID     int
	takenNames map[string]bool
	casRows    *int64 // overrides UpdateStatus result when set
}

func newFakeBrandStore() *fakeBrandStore {
	return &fakeBrandStore{brands: make(map[int]*models.Brand), nextID: 1, takenNames: make(map[string]bool)}
}

func (f *fakeBrandStore) Create(ctx context.Context, b *models.Brand) error {
	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.brands[b.ID] = &cp
	return nil
}

func (f *fakeBrandStore) GetByID(ctx context.Context, id int) (*models.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBrandStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	return f.takenNames[name], nil
}

func (f *fakeBrandStore) ListAccepted(ctx context.Context) ([]models.Brand, error) {
	var out []models.Brand
	for _, b := range f.brands {
		if b.Status == workflow.StatusAccepted {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBrandStore) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Brand, int, error) {
	var out []models.Brand
	for _, b := range f.brands {
		if status == "" || string(b.Status) == status {
			out = append(out, *b)
		}
	}
	return out, len(out), nil
}

func (f *fakeBrandStore) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	if f.casRows != nil {
		return *f.casRows, nil
	}
	b, ok := f.brands[id]
	if !ok || b.Status != from {
		return 0, nil
	}
	b.Status = to
	return 1, nil
}

type fakeProductStore struct {
	products map[int]*models.Product
	nextID   int
	casRows  *int64
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[int]*models.Product), nextID: 1}
}

func (f *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) ListPublic(ctx context.Context, category, search string, page, limit int) ([]models.Product, int, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.Status == workflow.StatusAccepted {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (f *fakeProductStore) ListAdmin(ctx context.Context, filter *repository.AdminProductFilter) ([]models.Product, int, error) {
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeProductStore) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	if f.casRows != nil {
		return *f.casRows, nil
	}
	p, ok := f.products[id]
	if !ok || p.Status != from {
		return 0, nil
	}
	p.Status = to
	return 1, nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id int) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) GetDistinctCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

type fakeOrderStore struct {
	orders   map[int]*models.Order
	nextID   int
	restored []int
	casRows  *int64
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[int]*models.Order), nextID: 1}
}

func (f *fakeOrderStore) Create(ctx context.Context, o *models.Order) error {
	o.ID = f.nextID
	f.nextID++
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id int) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
	var out []models.Order
	for _, o := range f.orders {
		if status == "" || string(o.Status) == status {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	if f.casRows != nil {
		return *f.casRows, nil
	}
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return 0, nil
	}
	o.Status = to
	return 1, nil
}

func (f *fakeOrderStore) RestoreStock(ctx context.Context, orderID int) error {
	f.restored = append(f.restored, orderID)
	return nil
}

func (f *fakeOrderStore) Stats(ctx context.Context) (*models.OrderStats, error) {
	return &models.OrderStats{Total: len(f.orders)}, nil
}

type fakeAdStore struct {
	ads     map[int]*models.Ad
	nextID  int
	casRows *int64
	expired int64
}

func newFakeAdStore() *fakeAdStore {
	return &fakeAdStore{ads: make(map[int]*models.Ad), nextID: 1}
}

func (f *fakeAdStore) Create(ctx context.Context, a *models.Ad) error {
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.ads[a.ID] = &cp
	return nil
}

func (f *fakeAdStore) GetByID(ctx context.Context, id int) (*models.Ad, error) {
	a, ok := f.ads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdStore) ListRunning(ctx context.Context, now time.Time) ([]models.Ad, error) {
	var out []models.Ad
	for _, a := range f.ads {
		if a.Status == workflow.StatusAccepted && a.IsActive && !now.Before(a.StartsAt) && now.Before(a.EndsAt) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAdStore) ListAdmin(ctx context.Context, status string, page, limit int) ([]models.Ad, int, error) {
	var out []models.Ad
	for _, a := range f.ads {
		if status == "" || string(a.Status) == status {
			out = append(out, *a)
		}
	}
	return out, len(out), nil
}

func (f *fakeAdStore) UpdateStatus(ctx context.Context, id int, from, to workflow.Status) (int64, error) {
	if f.casRows != nil {
		return *f.casRows, nil
	}
	a, ok := f.ads[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	return 1, nil
}

func (f *fakeAdStore) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.expired, nil
}

type fakeUserStore struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeScreener struct {
	labels []string
	err    error
	urls   []string
}

func (f *fakeScreener) ScreenURL(ctx context.Context, imageURL string) ([]string, error) {
	f.urls = append(f.urls, imageURL)
	return f.labels, f.err
}

type fakeListingCache struct {
	page          *cache.CatalogPage
	gets          int
	sets          int
	invalidations int
}

func (f *fakeListingCache) GetListing(ctx context.Context, category, search string, page, limit int) (*cache.CatalogPage, error) {
	f.gets++
	return f.page, nil
}

func (f *fakeListingCache) SetListing(ctx context.Context, category, search string, page, limit int, data *cache.CatalogPage) error {
	f.sets++
	f.page = data
	return nil
}

func (f *fakeListingCache) Invalidate(ctx context.Context) error {
	f.invalidations++
	f.page = nil
	return nil
}
