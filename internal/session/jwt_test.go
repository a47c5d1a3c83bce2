package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("seller-1", "seller@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "seller-1", claims.SellerID)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.Equal(t, "seller-1", claims.Subject)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue("seller-1", "seller@example.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	token, err := NewManager("test-secret", -time.Minute).Issue("seller-1", "seller@example.com")
	require.NoError(t, err)

	_, err = NewManager("test-secret", -time.Minute).Validate(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Validate("not-a-token")
	assert.Error(t, err)
}
