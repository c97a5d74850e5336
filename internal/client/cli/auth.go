package cli

import (
	"context"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/validation"
	"github.com/dmitrijs2005/gobarber/internal/common"
)

// getSimpleText and getPassword point to the interactive input helpers and
// are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for credentials and signs in through the session store,
// which persists the session on success.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := models.SignInForm{Email: email, Password: string(password)}
	if err := validation.SignIn(form); err != nil {
		a.report(ctx, "sign in", "", err)
		return err
	}

	if err := a.store.SignIn(ctx, form.Email, form.Password); err != nil {
		a.report(ctx, "sign in", "Authentication error: could not sign in, check your credentials.", err)
		return err
	}

	user, _ := a.store.CurrentUser()
	a.println("Welcome,", user.Name)
	return nil
}

// SignUp creates an account. The user signs in separately afterwards.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := models.SignUpForm{Name: name, Email: email, Password: string(password)}
	if err := validation.SignUp(form); err != nil {
		a.report(ctx, "sign up", "", err)
		return err
	}

	if err := a.auth.SignUp(ctx, form); err != nil {
		a.report(ctx, "sign up", "Registration error: could not create the account, try again.", err)
		return err
	}

	a.println("Account created! You can now sign in.")
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	form := models.ForgotPasswordForm{Email: email}
	if err := validation.ForgotPassword(form); err != nil {
		a.report(ctx, "forgot password", "", err)
		return err
	}

	if err := a.auth.ForgotPassword(ctx, form); err != nil {
		a.report(ctx, "forgot password", "Password recovery error: could not send the recovery email, try again.", err)
		return err
	}

	a.println("Check your inbox for the password reset link.")
	return nil
}

// SignOut clears the persisted session.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.store.SignOut(ctx); err != nil {
		a.report(ctx, "sign out", "Could not sign out, try again.", err)
		return err
	}
	a.println("Signed out.")
	return nil
}
