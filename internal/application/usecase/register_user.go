package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
)

const minPasswordLength = 8

// TokenIssuer issues signed API tokens for authenticated users.
// *auth.JWTService satisfies it.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, username string, roles []string) (string, error)
}

// RegisterUser is the use case for creating a user account.
type RegisterUser struct {
	users  port.UserRepository
	tokens TokenIssuer
}

// NewRegisterUser creates a new RegisterUser use case.
func NewRegisterUser(users port.UserRepository, tokens TokenIssuer) *RegisterUser {
	return &RegisterUser{users: users, tokens: tokens}
}

// Execute creates the account and returns a fresh token so the client is
// signed in immediately. A taken username surfaces as
// port.ErrDuplicateUsername.
func (uc *RegisterUser) Execute(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return dto.AuthResponse{}, &valueobject.MissingRequiredFieldError{Field: "username"}
	}
	if req.Password == "" {
		return dto.AuthResponse{}, &valueobject.MissingRequiredFieldError{Field: "password"}
	}
	if len(req.Password) < minPasswordLength {
		return dto.AuthResponse{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := model.NewUser(username, string(hash))
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uc.users.Save(ctx, user); err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := uc.tokens.GenerateToken(user.ID(), user.Username(), []string{auth.RolePatient})
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return dto.AuthResponse{
		UserID:   user.ID(),
		Username: user.Username(),
		Token:    token,
	}, nil
}
