package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/doafacil/doafacil/internal/models"
	"github.com/doafacil/doafacil/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserUsecase resolves the acting user from the request context. Token
// verification happens upstream in the auth middleware; here the principal id
// is turned into a full user record.
type UserUsecase interface {
	GetUser(ctx context.Context, rctx models.RequestContext) (*models.User, error)
}

type userUsecase struct {
	users mongodb.UserRepository
}

func NewUserUsecase(users mongodb.UserRepository) UserUsecase {
	return &userUsecase{users: users}
}

func (uc *userUsecase) GetUser(ctx context.Context, rctx models.RequestContext) (*models.User, error) {
	if rctx.UserID == "" {
		return nil, models.NewAuthError("Acesso negado.")
	}

	id, err := primitive.ObjectIDFromHex(rctx.UserID)
	if err != nil {
		return nil, models.NewAuthError("Acesso negado.")
	}

	user, err := uc.users.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewAuthError("Acesso negado.")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
