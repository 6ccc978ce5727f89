package blobstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/lavka-miniapp/pkg/db/models"
	pkgredis "github.com/angelmondragon/lavka-miniapp/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type snapshot struct {
	IDs []string `json:"ids"`
}

func TestMemoryGetMissing(t *testing.T) {
	_, err := NewMemory().Get(context.Background(), "lavka-orders")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	value := []byte("abc")
	require.NoError(t, mem.Put(ctx, "k", value))
	value[0] = 'z'

	got, err := mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLoadSaveJSON(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	var empty snapshot
	found, err := LoadJSON(ctx, mem, "lavka-favorites", &empty)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SaveJSON(ctx, mem, "lavka-favorites", snapshot{IDs: []string{"3", "4"}}))

	var loaded snapshot
	found, err = LoadJSON(ctx, mem, "lavka-favorites", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"3", "4"}, loaded.IDs)
}

func TestLoadJSONMalformed(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Put(ctx, "lavka-reviews", []byte("{not json")))

	var dest snapshot
	found, err := LoadJSON(ctx, mem, "lavka-reviews", &dest)
	assert.True(t, found)
	require.Error(t, err)
}

func TestPrefixedScopesKeys(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	a := Prefixed(mem, "tg:1")
	b := Prefixed(mem, "tg:2")

	require.NoError(t, a.Put(ctx, "lavka-orders", []byte("[1]")))
	_, err := b.Get(ctx, "lavka-orders")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := mem.Get(ctx, "tg:1:lavka-orders")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))

	assert.Same(t, Store(mem), Prefixed(mem, "  "))
}

func TestSQLStoreUpserts(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:blobstore_sql_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Blob{}))
	require.NoError(t, conn.Exec("DELETE FROM kv_blobs").Error)

	ctx := context.Background()
	store := NewSQL(conn)

	_, err = store.Get(ctx, "lavka-orders")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "lavka-orders", []byte("[]")))
	require.NoError(t, store.Put(ctx, "lavka-orders", []byte(`[{"id":"order-1"}]`)))

	got, err := store.Get(ctx, "lavka-orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"order-1"}]`, string(got))

	var count int64
	require.NoError(t, conn.Model(&models.Blob{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

type fakeRedis struct {
	data   map[string][]byte
	getErr error
}

func (f *fakeRedis) GetBytes(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, pkgredis.ErrNil
	}
	return v, nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.([]byte)
	return nil
}

func (f *fakeRedis) BlobKey(name string) string { return "lavka:blob:" + name }

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{data: map[string][]byte{}}
	store := NewRedis(fake)

	_, err := store.Get(ctx, "lavka-favorites")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "lavka-favorites", []byte("[]")))
	assert.Contains(t, fake.data, "lavka:blob:lavka-favorites")

	fake.getErr = errors.New("connection refused")
	_, err = store.Get(ctx, "lavka-favorites")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
