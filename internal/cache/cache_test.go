package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/config"
	"storefront/internal/models"
)

func TestNoop(t *testing.T) {
	var c ProductCache = Noop{}
	ctx := context.Background()

	c.Set(ctx, models.Product{Base: models.Base{ID: 1}, Name: "x"})
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	c.Invalidate(ctx, 1)
}

func TestProductKey(t *testing.T) {
	assert.Equal(t, "product:42", productKey(42))
}

func TestNewRedisClient_RequiresAddr(t *testing.T) {
	_, err := NewRedisClient(config.RedisConfig{})
	assert.Error(t, err)
}
