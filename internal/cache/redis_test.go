package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

type fakeClient struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	c := NewRedisCache(client, time.Minute)
	specs := "4K\nNight vision"
	p := models.Product{
		Base:        models.Base{ID: 7, CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		Name:        "CCTV Camera",
		Description: "Outdoor camera",
		Specs:       &specs,
		Images:      pq.StringArray{"https://img/a.jpg", "https://img/b.jpg"},
	}

	c.Set(ctx, p)
	assert.Equal(t, time.Minute, client.ttls["product:7"])

	got, ok := c.Get(ctx, 7)
	require.True(t, ok)
	assert.Equal(t, p.Name, got.Name)
	require.NotNil(t, got.Specs)
	assert.Equal(t, specs, *got.Specs)
	assert.Equal(t, []string{"https://img/a.jpg", "https://img/b.jpg"}, []string(got.Images))
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	c.Invalidate(ctx, 7)
	_, ok = c.Get(ctx, 7)
	assert.False(t, ok)
}

func TestRedisCache_NilSpecsSurvive(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(newFakeClient(), time.Minute)

	c.Set(ctx, models.Product{Base: models.Base{ID: 1}, Name: "x", Images: pq.StringArray{"u"}})
	got, ok := c.Get(ctx, 1)

	require.True(t, ok)
	assert.Nil(t, got.Specs)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	client := newFakeClient()
	client.data["product:3"] = "{not json"

	_, ok := NewRedisCache(client, time.Minute).Get(context.Background(), 3)

	assert.False(t, ok)
}

func TestRedisCache_ErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.getErr = errors.New("connection refused")
	client.setErr = errors.New("connection refused")
	c := NewRedisCache(client, time.Minute)

	assert.NotPanics(t, func() { c.Set(ctx, models.Product{Base: models.Base{ID: 1}}) })
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Empty(t, client.data)
}
