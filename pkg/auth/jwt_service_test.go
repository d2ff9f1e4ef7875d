package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("unit-test-secret", time.Hour)

	token, err := svc.GenerateToken("cust@test.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cust@test.com", claims.OwnerID)
	assert.Equal(t, "customer", claims.Role)
	assert.NotEmpty(t, claims.ID, "every token carries a unique id for revocation")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken("cust@test.com", "customer")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("unit-test-secret", -time.Minute)

	token, err := svc.GenerateToken("cust@test.com", "customer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Cust@123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("Cust@123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
