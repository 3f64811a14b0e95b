package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/doafacil/doafacil/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewUserUsecase(users)

	existing := &models.User{Name: "Maria", Email: "maria@example.com"}
	require.NoError(t, users.Create(context.Background(), existing))

	t.Run("resolves the principal", func(t *testing.T) {
		user, err := uc.GetUser(context.Background(), models.RequestContext{UserID: existing.ID.Hex()})
		require.NoError(t, err)
		assert.Equal(t, "Maria", user.Name)
	})

	tests := []struct {
		name   string
		userID string
	}{
		{name: "missing principal", userID: ""},
		{name: "malformed principal id", userID: "nope"},
		{name: "unknown principal", userID: "64a0f2c8e13b4a5d6c7e8f90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.GetUser(context.Background(), models.RequestContext{UserID: tt.userID})

			var appErr *models.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusUnauthorized, appErr.Code)
		})
	}
}
