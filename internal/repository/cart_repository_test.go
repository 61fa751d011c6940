package repository

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCartRepository(t *testing.T, ttl time.Duration) (CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCartRepository(client, ttl), mr
}

func cartRepositories(t *testing.T) map[string]CartRepository {
	redisRepo, _ := newRedisCartRepository(t, 0)
	return map[string]CartRepository{
		"memory": NewMemoryCartRepository(),
		"redis":  redisRepo,
	}
}

func TestCartRepository_LoadMissing(t *testing.T) {
	for name, repo := range cartRepositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Load(context.Background(), uuid.New())
			assert.ErrorIs(t, err, domain.ErrCartNotFound)
		})
	}
}

func TestCartRepository_SaveAndLoad(t *testing.T) {
	for name, repo := range cartRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()
			first, second := uuid.New(), uuid.New()

			cart := domain.NewCart(userID)
			cart.Add(first, 2)
			cart.Add(second, 1)
			require.NoError(t, repo.Save(ctx, cart))

			loaded, err := repo.Load(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, userID, loaded.UserID)
			assert.Equal(t, []domain.CartItem{
				{ProductID: first, Quantity: 2},
				{ProductID: second, Quantity: 1},
			}, loaded.Items)
			assert.WithinDuration(t, cart.UpdatedAt, loaded.UpdatedAt, time.Millisecond)
		})
	}
}

func TestCartRepository_EmptyCartRoundTrip(t *testing.T) {
	for name, repo := range cartRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cart := domain.NewCart(uuid.New())
			cart.Add(uuid.New(), 1)
			cart.Clear()
			require.NoError(t, repo.Save(ctx, cart))

			loaded, err := repo.Load(ctx, cart.UserID)
			require.NoError(t, err)
			assert.NotNil(t, loaded.Items)
			assert.Empty(t, loaded.Items)
		})
	}
}

func TestMemoryCartRepository_IsolatesCallers(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()
	productID := uuid.New()

	cart := domain.NewCart(uuid.New())
	cart.Add(productID, 1)
	require.NoError(t, repo.Save(ctx, cart))

	cart.Add(productID, 10)

	loaded, err := repo.Load(ctx, cart.UserID)
	require.NoError(t, err)
	loaded.Add(productID, 100)

	again, err := repo.Load(ctx, cart.UserID)
	require.NoError(t, err)
	item, ok := again.Item(productID)
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
}

func TestRedisCartRepository_KeyAndTTL(t *testing.T) {
	repo, mr := newRedisCartRepository(t, 2*time.Hour)
	ctx := context.Background()

	cart := domain.NewCart(uuid.New())
	cart.Add(uuid.New(), 3)
	require.NoError(t, repo.Save(ctx, cart))

	key := "cart:" + cart.UserID.String()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 2*time.Hour, mr.TTL(key))

	mr.FastForward(3 * time.Hour)

	_, err := repo.Load(ctx, cart.UserID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestRedisCartRepository_CorruptValue(t *testing.T) {
	repo, mr := newRedisCartRepository(t, 0)
	userID := uuid.New()
	require.NoError(t, mr.Set("cart:"+userID.String(), "{not json"))

	_, err := repo.Load(context.Background(), userID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCartNotFound)
}
