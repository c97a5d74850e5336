package models

// SignInForm is submitted on the sign-in screen.
type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpForm is submitted on the sign-up screen.
type SignUpForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ForgotPasswordForm requests a password-reset email.
type ForgotPasswordForm struct {
	Email string `json:"email" validate:"required,email"`
}

// ProfileForm edits name and email and, when CurrentPassword is set,
// changes the password as well. The password rules only apply in that case
// and are checked by the validation package.
type ProfileForm struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	CurrentPassword      string `json:"current_password,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// Payload returns the request body for PUT /profile. Password fields are
// only sent when the user typed their current password.
func (f ProfileForm) Payload() ProfileForm {
	if f.CurrentPassword == "" {
		return ProfileForm{Name: f.Name, Email: f.Email}
	}
	return f
}
