// Package validation checks form input before it reaches the network and
// classifies the errors the screens have to render.
//
// Callers switch on KindOf(err) instead of testing concrete error types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gobarber/internal/client/client"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/storage"
)

// Kind tags an error with the way a screen should report it.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindRequest
	KindStorage
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindRequest:
		return "request"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error lists the offending fields by their JSON names, each with a message
// suitable for display.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldNames returns the invalid fields in sorted order.
func (e *Error) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KindOf classifies err. Request failures are opaque and never carry the
// server's reason.
func KindOf(err error) Kind {
	var verr *Error
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, client.ErrRequestFailed):
		return KindRequest
	case errors.Is(err, storage.ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func SignIn(form models.SignInForm) error {
	return check(form, nil)
}

func SignUp(form models.SignUpForm) error {
	return check(form, nil)
}

func ForgotPassword(form models.ForgotPasswordForm) error {
	return check(form, nil)
}

// Profile checks name and email always, and the new password only when the
// current one was typed.
func Profile(form models.ProfileForm) error {
	extra := map[string]string{}
	if form.CurrentPassword != "" {
		switch {
		case form.Password == "":
			extra["password"] = "is required"
		case len(form.Password) < 6:
			extra["password"] = "must be at least 6 characters"
		}
		if form.PasswordConfirmation != form.Password {
			extra["password_confirmation"] = "must match password"
		}
	}
	return check(form, extra)
}

func check(form any, extra map[string]string) error {
	fields := map[string]string{}
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate form: %w", err)
		}
		for _, fe := range verrs {
			fields[fe.Field()] = message(fe)
		}
	}
	for k, v := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
