package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
)

type Client interface {
	SignIn(ctx context.Context, email, password string) (models.User, string, error)
	SignUp(ctx context.Context, form models.SignUpForm) error
	ForgotPassword(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, form models.ProfileForm) (models.User, error)
	UpdateAvatar(ctx context.Context, fileName string, image io.Reader) (models.User, error)
	ListProviders(ctx context.Context) ([]models.Provider, error)
	SetToken(token string)
}
