package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, NormalizeRole("super admin"))
	assert.Equal(t, RoleSuperAdmin, NormalizeRole("super_admin"))
	assert.Equal(t, RoleSuperAdmin, NormalizeRole("  Super Admin "))
	assert.Equal(t, RoleManager, NormalizeRole("manager"))
	assert.Equal(t, RoleManager, NormalizeRole("MANAGER"))

	// Unknown roles pass through so callers can log what they saw.
	assert.Equal(t, Role("auditor"), NormalizeRole("auditor"))
	assert.False(t, NormalizeRole("auditor").Known())
}

func TestSessionValid(t *testing.T) {
	full := Session{
		Role:   RoleManager,
		Tokens: Tokens{AccessToken: "a", RefreshToken: "r"},
	}
	assert.True(t, full.Valid())

	t.Run("missing role", func(t *testing.T) {
		s := full
		s.Role = ""
		assert.False(t, s.Valid())
	})

	t.Run("missing access token", func(t *testing.T) {
		s := full
		s.Tokens.AccessToken = ""
		assert.False(t, s.Valid())
	})

	t.Run("missing refresh token", func(t *testing.T) {
		s := full
		s.Tokens.RefreshToken = ""
		assert.False(t, s.Valid())
	})

	t.Run("unknown role", func(t *testing.T) {
		s := full
		s.Role = "auditor"
		assert.False(t, s.Valid())
	})
}

func TestFlexID(t *testing.T) {
	t.Run("accepts number", func(t *testing.T) {
		var id FlexID
		assert.NoError(t, json.Unmarshal([]byte(`42`), &id))
		assert.Equal(t, FlexID("42"), id)
	})

	t.Run("accepts string", func(t *testing.T) {
		var id FlexID
		assert.NoError(t, json.Unmarshal([]byte(`"42"`), &id))
		assert.Equal(t, FlexID("42"), id)
	})

	t.Run("numeric id marshals as number", func(t *testing.T) {
		data, err := json.Marshal(FlexID("42"))
		assert.NoError(t, err)
		assert.Equal(t, `42`, string(data))
	})

	t.Run("leading-zero id marshals as string", func(t *testing.T) {
		data, err := json.Marshal(FlexID("007"))
		assert.NoError(t, err)
		assert.Equal(t, `"007"`, string(data))
	})

	t.Run("non-numeric id marshals as string", func(t *testing.T) {
		data, err := json.Marshal(FlexID("br-main"))
		assert.NoError(t, err)
		assert.Equal(t, `"br-main"`, string(data))
	})

	t.Run("number and string compare equal", func(t *testing.T) {
		var a, b FlexID
		assert.NoError(t, json.Unmarshal([]byte(`7`), &a))
		assert.NoError(t, json.Unmarshal([]byte(`"7"`), &b))
		assert.Equal(t, a, b)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var id FlexID
		assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
	})
}

func TestStatusOrCompleted(t *testing.T) {
	assert.Equal(t, StatusCompleted, Status("").OrCompleted())
	assert.Equal(t, StatusPending, StatusPending.OrCompleted())
	assert.Equal(t, StatusFailed, StatusFailed.OrCompleted())
}

func TestTransactionInvolvesBranch(t *testing.T) {
	tx := Transaction{FromBranch: "Alpha", ToBranch: "Beta"}
	assert.True(t, tx.InvolvesBranch("alpha"))
	assert.True(t, tx.InvolvesBranch("Beta"))
	assert.False(t, tx.InvolvesBranch("Gamma"))
}
