package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	assert.True(t, CanAccess(RoleSuperAdmin, RoleSuperAdmin))
	assert.True(t, CanAccess(RoleTechnician, RoleSuperAdmin, RoleTechnician))
	assert.False(t, CanAccess(RoleTechnician, RoleSuperAdmin))
	assert.False(t, CanAccess(Role("manager"), RoleSuperAdmin, RoleTechnician))

	// An empty role never matches, even against an empty allow list
	// entry.
	assert.False(t, CanAccess(Role(""), RoleSuperAdmin))
	assert.False(t, CanAccess(Role(""), Role("")))
	assert.False(t, CanAccess(RoleSuperAdmin))
}

func TestPrincipalRoleHelpers(t *testing.T) {
	assert.True(t, Principal{Role: RoleSuperAdmin}.IsSuperAdmin())
	assert.False(t, Principal{Role: RoleSuperAdmin}.IsTechnician())
	assert.True(t, Principal{Role: RoleTechnician}.IsTechnician())
	assert.False(t, Principal{}.IsSuperAdmin())
}
