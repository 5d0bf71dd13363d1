package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/auth"
)

// Authenticator verifies credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

type Service struct {
	users  Authenticator
	jwtSvc auth.JWTService
}

func NewService(users Authenticator, jwtSvc auth.JWTService) *Service {
	return &Service{
		users:  users,
		jwtSvc: jwtSvc,
	}
}

// Login authenticates the user and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		log.Ctx(ctx).Info().Str("username", username).Msg("login failed")
		return nil, err
	}

	token, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtSvc.TTL().Seconds()),
		User:        user,
	}, nil
}

func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtSvc.ValidateToken(token)
}
