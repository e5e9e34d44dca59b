package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestTokenDenylist_RevokeUntilExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	denylist := NewTokenDenylist(client)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("revoked:token:jti-1"))
	assert.Greater(t, mr.TTL("revoked:token:jti-1"), 59*time.Minute)

	mr.FastForward(2 * time.Hour)

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry must disappear with the token's lifetime")
}

func TestTokenDenylist_ExpiredTokenIsNotStored(t *testing.T) {
	mr, client := newTestRedis(t)
	denylist := NewTokenDenylist(client)

	require.NoError(t, denylist.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))

	assert.False(t, mr.Exists("revoked:token:old"))
}

func TestTokenDenylist_RedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	denylist := NewTokenDenylist(db)

	mock.ExpectExists("revoked:token:jti-2").SetErr(errors.New("connection refused"))
	_, err := denylist.IsRevoked(context.Background(), "jti-2")
	assert.Error(t, err)

	// the TTL is computed at call time, so only the command itself is matched
	mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectSet("revoked:token:jti-2", "1", time.Minute).SetErr(errors.New("connection refused"))
	err = denylist.Revoke(context.Background(), "jti-2", time.Now().Add(time.Minute))
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr, _ := newTestRedis(t)
	mr.RequireAuth("secret")

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "secret", DB: 0})
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "secret", client.Options().Password)

	_, err = Connect(context.Background(), Config{Addr: mr.Addr(), Password: "wrong"})
	assert.Error(t, err)
}
