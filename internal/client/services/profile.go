package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gobarber/internal/client/client"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// ErrNoUser is returned by operations that need a signed-in user.
var ErrNoUser = errors.New("no signed-in user")

// UserStore is the slice of the session store the profile service needs.
type UserStore interface {
	CurrentUser() (models.User, bool)
	UpdateUser(ctx context.Context, user models.User) error
}

// ProfileService edits the signed-in user's profile and lists providers.
// Fresh user representations returned by the API are fed into the store.
type ProfileService interface {
	UpdateProfile(ctx context.Context, form models.ProfileForm) (models.User, error)
	UpdateAvatar(ctx context.Context, imagePath string) (models.User, error)
	ListProviders(ctx context.Context) ([]models.Provider, error)
}

type profileService struct {
	client client.Client
	store  UserStore
	logger logging.Logger
}

func NewProfileService(c client.Client, store UserStore, logger logging.Logger) ProfileService {
	return &profileService{client: c, store: store, logger: logger.With("component", "profile")}
}

func (p *profileService) UpdateProfile(ctx context.Context, form models.ProfileForm) (models.User, error) {
	user, err := p.client.UpdateProfile(ctx, form)
	if err != nil {
		p.logger.Warn(ctx, "profile update failed", "error", err)
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	if err := p.store.UpdateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	p.logger.Info(ctx, "profile updated", "user_id", user.ID, "password_changed", form.CurrentPassword != "")
	return user, nil
}

// UpdateAvatar uploads the image at imagePath as "<user id>.jpg".
func (p *profileService) UpdateAvatar(ctx context.Context, imagePath string) (models.User, error) {
	current, ok := p.store.CurrentUser()
	if !ok {
		return models.User{}, ErrNoUser
	}

	f, err := os.Open(filepath.Clean(imagePath))
	if err != nil {
		return models.User{}, fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	user, err := p.client.UpdateAvatar(ctx, current.ID+".jpg", f)
	if err != nil {
		p.logger.Warn(ctx, "avatar update failed", "error", err)
		return models.User{}, fmt.Errorf("update avatar: %w", err)
	}
	if err := p.store.UpdateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (p *profileService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	providers, err := p.client.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return providers, nil
}
