// Package services holds the client's use cases on top of the REST
// transport: the auth gateway (sign in, sign up, password recovery) and the
// profile service (profile edit, avatar, dashboard listing).
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gobarber/internal/client/client"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// AuthService is the network contract for authentication.
//
//   - SignIn: exchange credentials for a user and a token.
//   - SignUp: create an account; the user signs in afterwards.
//   - ForgotPassword: ask the API to email a reset link.
//
// Failures are opaque: every error matches client.ErrRequestFailed.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (models.User, string, error)
	SignUp(ctx context.Context, form models.SignUpForm) error
	ForgotPassword(ctx context.Context, form models.ForgotPasswordForm) error
}

type authService struct {
	client client.Client
	logger logging.Logger
}

func NewAuthService(c client.Client, logger logging.Logger) AuthService {
	return &authService{client: c, logger: logger.With("component", "auth")}
}

func (a *authService) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	user, token, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "sign in failed", "error", err)
		return models.User{}, "", fmt.Errorf("sign in: %w", err)
	}
	a.logger.Info(ctx, "signed in", "user_id", user.ID)
	return user, token, nil
}

func (a *authService) SignUp(ctx context.Context, form models.SignUpForm) error {
	if err := a.client.SignUp(ctx, form); err != nil {
		a.logger.Warn(ctx, "sign up failed", "error", err)
		return fmt.Errorf("sign up: %w", err)
	}
	a.logger.Info(ctx, "account created")
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, form models.ForgotPasswordForm) error {
	if err := a.client.ForgotPassword(ctx, form.Email); err != nil {
		a.logger.Warn(ctx, "password recovery failed", "error", err)
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}
