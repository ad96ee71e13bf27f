package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"storefront/internal/errs"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// memProducts is an in-memory ProductRepository.
type memProducts struct {
	mu        sync.Mutex
	nextID    uint
	rows      map[uint]models.Product
	updateErr error
	updates   int
}

func newMemProducts(items ...models.Product) *memProducts {
	m := &memProducts{rows: map[uint]models.Product{}}
	for _, p := range items {
		m.nextID++
		if p.ID == 0 {
			p.ID = m.nextID
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Date(2024, 1, 1, 0, 0, int(p.ID), 0, time.UTC)
		}
		m.rows[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	m.rows[p.ID] = *p
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id uint) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return models.Product{}, errs.ErrProductNotFound
	}
	return p, nil
}

func (m *memProducts) UpdateFields(_ context.Context, id uint, f repository.ProductFields) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateErr != nil {
		return models.Product{}, m.updateErr
	}
	p, ok := m.rows[id]
	if !ok {
		return models.Product{}, errs.ErrProductNotFound
	}
	p.Name, p.Description = f.Name, f.Description
	if f.Specs != nil {
		p.Specs = f.Specs
	}
	p.Images = append([]string(nil), f.Images...)
	m.rows[id] = p
	return p, nil
}

func (m *memProducts) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return errs.ErrProductNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memProducts) List(_ context.Context, f repository.ListFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.rows {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	start := (f.Page - 1) * f.PageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + f.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *memProducts) Latest(_ context.Context, n int) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

type memPending struct {
	mu   sync.Mutex
	rows []models.PendingImageDeletion
}

func (m *memPending) Add(_ context.Context, publicID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, models.PendingImageDeletion{PublicID: publicID, LastError: reason})
	return nil
}

func (m *memPending) ListDue(context.Context, int, int) ([]models.PendingImageDeletion, error) {
	return nil, nil
}

func (m *memPending) Remove(context.Context, uint) error             { return nil }
func (m *memPending) MarkFailed(context.Context, uint, string) error { return nil }

func (m *memPending) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.PublicID)
	}
	return out
}

type memSettings struct {
	rows []models.Setting
}

func (m *memSettings) List(context.Context) ([]models.Setting, error) {
	return m.rows, nil
}

func (m *memSettings) Get(_ context.Context, key string) (models.Setting, bool, error) {
	for _, s := range m.rows {
		if s.Key == key {
			return s, true, nil
		}
	}
	return models.Setting{}, false, nil
}

func (m *memSettings) Upsert(_ context.Context, key, value string) (models.Setting, error) {
	for i, s := range m.rows {
		if s.Key == key {
			m.rows[i].Value = value
			return m.rows[i], nil
		}
	}
	s := models.Setting{Key: key, Value: value}
	s.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, s)
	return s, nil
}

type recordedEvent struct {
	Type string
	Data interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Data: data})
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeCache struct {
	items       map[uint]models.Product
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[uint]models.Product{}}
}

func (c *fakeCache) Get(_ context.Context, id uint) (models.Product, bool) {
	p, ok := c.items[id]
	return p, ok
}

func (c *fakeCache) Set(_ context.Context, p models.Product) { c.items[p.ID] = p }

func (c *fakeCache) Invalidate(_ context.Context, id uint) {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}
