package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ostia/pkg/adapters/redis"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/ports"
)

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	ports.RunTrainingStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	set := &domain.TrainingSet{Name: "ttl", Sample: domain.ParseSample("a", "0")}

	err = store.Save(ctx, set)
	assert.NoError(t, err)

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, names, "ttl")

	// Key expiry is driven by miniredis time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "ttl")
	assert.ErrorIs(t, err, domain.ErrTrainingSetNotFound)

	// Index pruning is driven by wall-clock time.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err = store.Save(ctx, &domain.TrainingSet{Name: "my-set"})
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:my-set"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, "my-set")
}
