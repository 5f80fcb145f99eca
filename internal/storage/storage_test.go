package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hodu/storefront/internal/database"
)

// StoreSuite checks the behaviour every backend must share.
type StoreSuite struct {
	suite.Suite
	provider Provider
	ctx      context.Context
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *StoreSuite) origin() string {
	return "test-" + uuid.NewString()
}

func (s *StoreSuite) TestGetMissingKey() {
	store := s.provider.Open(s.origin())

	_, err := store.Get(s.ctx, "nope")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreSuite) TestSetManyThenGet() {
	store := s.provider.Open(s.origin())

	s.Require().NoError(store.SetMany(s.ctx, map[string]string{
		"access_token": "a",
		"user_type":    "buyer",
	}))

	v, err := store.Get(s.ctx, "access_token")
	s.Require().NoError(err)
	s.Equal("a", v)

	v, err = store.Get(s.ctx, "user_type")
	s.Require().NoError(err)
	s.Equal("buyer", v)
}

func (s *StoreSuite) TestOverwrite() {
	store := s.provider.Open(s.origin())

	s.Require().NoError(Set(s.ctx, store, "cart", "[]"))
	s.Require().NoError(Set(s.ctx, store, "cart", `[{"product_id":1}]`))

	v, err := store.Get(s.ctx, "cart")
	s.Require().NoError(err)
	s.Equal(`[{"product_id":1}]`, v)
}

func (s *StoreSuite) TestRemoveMany() {
	store := s.provider.Open(s.origin())
	s.Require().NoError(store.SetMany(s.ctx, map[string]string{"a": "1", "b": "2", "c": "3"}))

	s.Require().NoError(store.Remove(s.ctx, "a", "b", "missing"))

	_, err := store.Get(s.ctx, "a")
	s.ErrorIs(err, ErrNotFound)
	_, err = store.Get(s.ctx, "b")
	s.ErrorIs(err, ErrNotFound)
	v, err := store.Get(s.ctx, "c")
	s.Require().NoError(err)
	s.Equal("3", v)
}

func (s *StoreSuite) TestOriginsAreIsolated() {
	first := s.provider.Open(s.origin())
	second := s.provider.Open(s.origin())

	s.Require().NoError(Set(s.ctx, first, "access_token", "x"))

	_, err := second.Get(s.ctx, "access_token")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreSuite) TestJSONHelpers() {
	store := s.provider.Open(s.origin())
	type item struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	}

	s.Require().NoError(SetJSON(s.ctx, store, "items", []item{{ID: 1, Qty: 2}}))

	var got []item
	s.Require().NoError(GetJSON(s.ctx, store, "items", &got))
	s.Equal([]item{{ID: 1, Qty: 2}}, got)

	ok, err := Exists(s.ctx, store, "items")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = Exists(s.ctx, store, "other")
	s.Require().NoError(err)
	s.False(ok)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{provider: NewMemoryProvider()})
}

func TestFileStore(t *testing.T) {
	p, err := NewFileProvider(filepath.Join(t.TempDir(), "nested", "storage.json"))
	require.NoError(t, err)
	suite.Run(t, &StoreSuite{provider: p})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := DialRedis(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)

	p := NewRedisProvider(client, "storefront-test", WithIdleTTL(time.Minute))
	defer p.Close()
	suite.Run(t, &StoreSuite{provider: p})
}

func TestGormStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	p := NewGormProvider(db)
	defer p.Close()
	suite.Run(t, &StoreSuite{provider: p})
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	p, err := NewFileProvider(path)
	require.NoError(t, err)
	require.NoError(t, Set(ctx, p.Open("cli"), "access_token", "tok"))

	reopened, err := NewFileProvider(path)
	require.NoError(t, err)
	v, err := reopened.Open("cli").Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	p, err := NewFileProvider(path)
	require.NoError(t, err)

	_, err = p.Open("cli").Get(context.Background(), "access_token")
	assert.Error(t, err)
}
