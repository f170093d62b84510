package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fidalli/crm-backend/pkg/cache"
)

const testSecret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("collab-1", "awa@fidalli.com", "admin", testSecret, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "collab-1", claims.CollaboratorID)
	assert.Equal(t, "awa@fidalli.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("collab-1", "awa@fidalli.com", "member", testSecret, 1)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenBlacklist(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := &cache.Client{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer client.Close()

	blacklist := NewTokenBlacklist(client)
	ctx := context.Background()

	token, err := GenerateJWT("collab-1", "awa@fidalli.com", "member", testSecret, 1)
	require.NoError(t, err)

	// Valid until revoked
	_, err = ValidateJWTWithBlacklist(ctx, token, testSecret, blacklist)
	require.NoError(t, err)

	require.NoError(t, blacklist.Add(ctx, token, time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = ValidateJWTWithBlacklist(ctx, token, testSecret, blacklist)
	assert.ErrorContains(t, err, "revoked")
}
