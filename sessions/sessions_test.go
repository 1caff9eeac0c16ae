package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	c := New(time.Hour)

	token, err := c.Issue()
	require.NoError(t, err)
	assert.True(t, c.Valid(token))
	assert.False(t, c.Valid(""))
	assert.False(t, c.Valid("forged"))

	other, err := c.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	c.Revoke(token)
	assert.False(t, c.Valid(token))
	assert.True(t, c.Valid(other))
}

func TestCache_Expiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	token, err := c.Issue()
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return !c.Valid(token) }, time.Second, 10*time.Millisecond)
}
