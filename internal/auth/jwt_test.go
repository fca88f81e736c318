package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairshop-service/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	user := &model.User{
		ID:    uuid.New(),
		Email: "tech@example.com",
		Role:  model.RoleTechnician,
	}

	token, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleTechnician, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	parser := NewManager("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: uuid.New(), Email: "x@y.z", Role: model.RoleSuperAdmin})
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Issue(&model.User{ID: uuid.New(), Email: "x@y.z", Role: model.RoleTechnician})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.Parse("not-a-token")
	assert.Error(t, err)
}
