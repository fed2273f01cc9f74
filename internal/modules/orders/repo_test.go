package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerScopeUser(t *testing.T) {
	uid := "user-a"
	cond, args := ownerScope(&uid, nil)
	assert.Equal(t, "user_id = ?", cond)
	assert.Equal(t, []any{"user-a"}, args)
}

func TestOwnerScopeGuest(t *testing.T) {
	email := "guest@example.com"
	cond, args := ownerScope(nil, &email)
	assert.Equal(t, "user_id IS NULL AND guest_email = ?", cond)
	assert.Equal(t, []any{"guest@example.com"}, args)
}

func TestOwnerScopeUserWinsOverGuest(t *testing.T) {
	uid := "user-a"
	email := "guest@example.com"
	cond, args := ownerScope(&uid, &email)
	assert.Equal(t, "user_id = ?", cond)
	assert.Equal(t, []any{"user-a"}, args)
}

func TestOwnerScopeAnonymous(t *testing.T) {
	cond, args := ownerScope(nil, nil)
	assert.Equal(t, "user_id IS NULL AND guest_email IS NULL", cond)
	assert.Empty(t, args)
}
