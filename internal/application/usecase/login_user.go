package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
)

// LoginUser is the use case for authenticating a user and issuing a token.
type LoginUser struct {
	users  port.UserRepository
	tokens TokenIssuer
}

// NewLoginUser creates a new LoginUser use case.
func NewLoginUser(users port.UserRepository, tokens TokenIssuer) *LoginUser {
	return &LoginUser{users: users, tokens: tokens}
}

// Execute verifies the credentials and returns a signed token. Unknown
// usernames and wrong passwords both surface as ErrInvalidCredentials.
func (uc *LoginUser) Execute(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	user, err := uc.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
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
