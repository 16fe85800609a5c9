package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

func TestRedisCacheWithoutClient(t *testing.T) {
	store := NewRedisCache(nil, "planner", nil)
	ctx := context.Background()

	var dest map[string]string
	err := store.Get(ctx, "programs:search:abc", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, store.Set(ctx, "programs:search:abc", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, store.DeleteByPattern(ctx, "programs:search:*"))
	assert.NoError(t, store.Close())
}

func TestRedisCacheKeyNamespace(t *testing.T) {
	assert.Equal(t, "planner:programs:search:abc", NewRedisCache(nil, "planner:", nil).key("programs:search:abc"))
	assert.Equal(t, "programs:search:*", NewRedisCache(nil, "", nil).key("programs:search:*"))
}
