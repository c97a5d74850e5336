package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/services"
	"github.com/dmitrijs2005/gobarber/internal/client/validation"
	"github.com/dmitrijs2005/gobarber/internal/common"
)

const appointmentLayout = "Monday, January 2, 2006 at 15:04"

// Dashboard greets the user and lists the providers.
func (a *App) Dashboard(ctx context.Context) error {
	user, ok := a.store.CurrentUser()
	if !ok {
		return services.ErrNoUser
	}
	a.println("Welcome,", user.Name)

	providers, err := a.profile.ListProviders(ctx)
	if err != nil {
		a.report(ctx, "dashboard", "Could not load the providers, try again.", err)
		return err
	}
	if len(providers) == 0 {
		a.println("No providers available.")
		return nil
	}

	a.println("Providers:")
	for _, p := range providers {
		a.printf("  %s  %s\n", p.ID, p.Name)
	}
	return nil
}

// Profile edits name and email. Empty answers keep the current values. The
// password is only changed when the current password is typed.
func (a *App) Profile(ctx context.Context) error {
	user, ok := a.store.CurrentUser()
	if !ok {
		return services.ErrNoUser
	}

	name, err := getSimpleText(a.reader, "Name ["+user.Name+"]", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email ["+user.Email+"]", a.out)
	if err != nil {
		return err
	}
	form := models.ProfileForm{Name: orDefault(name, user.Name), Email: orDefault(email, user.Email)}

	current, err := getPassword(a.out, "Current password (empty to keep)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	if len(current) > 0 {
		password, err := getPassword(a.out, "New password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		confirmation, err := getPassword(a.out, "Confirm new password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirmation)

		form.CurrentPassword = string(current)
		form.Password = string(password)
		form.PasswordConfirmation = string(confirmation)
	}

	if err := validation.Profile(form); err != nil {
		a.report(ctx, "profile", "", err)
		return err
	}

	if _, err := a.profile.UpdateProfile(ctx, form); err != nil {
		a.report(ctx, "profile", "Profile update error: could not update the profile, try again.", err)
		return err
	}

	a.println("Profile updated!")
	return nil
}

// Avatar uploads the image at path.
func (a *App) Avatar(ctx context.Context, path string) error {
	user, err := a.profile.UpdateAvatar(ctx, path)
	if err != nil {
		a.report(ctx, "avatar", "Avatar update error: could not update the avatar, try again.", err)
		return err
	}
	a.println("Avatar updated:", user.AvatarURL)
	return nil
}

// Appointment renders the appointment-created confirmation for when, an
// RFC 3339 time.
func (a *App) Appointment(ctx context.Context, when string) error {
	at, err := time.Parse(time.RFC3339, when)
	if err != nil {
		a.println("Invalid time, expected RFC 3339 such as 2026-03-14T12:00:00Z")
		return err
	}
	a.println("Appointment created!")
	a.println(at.Format(appointmentLayout))
	return nil
}

// WhoAmI prints the signed-in user and, for JWT tokens, when the session
// expires.
func (a *App) WhoAmI(ctx context.Context) error {
	user, ok := a.store.CurrentUser()
	if !ok {
		return services.ErrNoUser
	}
	a.printf("%s <%s>\n", user.Name, user.Email)
	if user.AvatarURL != "" {
		a.println("Avatar:", user.AvatarURL)
	}

	if token, ok := a.store.Token(); ok {
		if exp, ok := services.TokenExpiry(token); ok {
			a.println("Session expires:", exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
