package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"customer", "driver", "manager"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "admin", "Customer", "MANAGER"} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "role %q", invalid)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"incomplete", "complete"} {
		status, err := ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	_, err := ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestSessionIsStaff(t *testing.T) {
	assert.False(t, (&Session{Role: RoleCustomer}).IsStaff())
	assert.True(t, (&Session{Role: RoleDriver}).IsStaff())
	assert.True(t, (&Session{Role: RoleManager}).IsStaff())
}
