package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gobarber/internal/client/client"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/session"
	"github.com/dmitrijs2005/gobarber/internal/client/storage"
	"github.com/dmitrijs2005/gobarber/internal/client/validation"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// ---- input stubs ----

// stubInputs answers text prompts from texts and password prompts from
// passwords, in order. Prompts beyond the queues get io.EOF.
func stubInputs(t *testing.T, texts []string, passwords []string) *[]string {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	prompts := &[]string{}

	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		*prompts = append(*prompts, prompt)
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer, prompt string) ([]byte, error) {
		*prompts = append(*prompts, prompt)
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return prompts
}

// ---- fakes ----

type fakeStore struct {
	user     *models.User
	token    string
	waitErr  error
	signErr  error
	outErr   error
	signUser models.User

	lastEmail    string
	lastPassword string
	signOuts     int
}

func (f *fakeStore) Wait(context.Context) error { return f.waitErr }

func (f *fakeStore) State() session.State {
	if f.user != nil {
		return session.Authenticated
	}
	return session.Anonymous
}

func (f *fakeStore) CurrentUser() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

func (f *fakeStore) Token() (string, bool) { return f.token, f.user != nil }

func (f *fakeStore) SignIn(_ context.Context, email, password string) error {
	f.lastEmail, f.lastPassword = email, password
	if f.signErr != nil {
		return f.signErr
	}
	u := f.signUser
	f.user = &u
	f.token = "123token"
	return nil
}

func (f *fakeStore) SignOut(context.Context) error {
	f.signOuts++
	if f.outErr != nil {
		return f.outErr
	}
	f.user = nil
	f.token = ""
	return nil
}

type fakeAuth struct {
	signUp    models.SignUpForm
	signUpErr error
	forgot    models.ForgotPasswordForm
	forgotErr error
	calls     int
}

func (f *fakeAuth) SignIn(context.Context, string, string) (models.User, string, error) {
	return models.User{}, "", errors.New("unused")
}

func (f *fakeAuth) SignUp(_ context.Context, form models.SignUpForm) error {
	f.calls++
	f.signUp = form
	return f.signUpErr
}

func (f *fakeAuth) ForgotPassword(_ context.Context, form models.ForgotPasswordForm) error {
	f.calls++
	f.forgot = form
	return f.forgotErr
}

type fakeProfile struct {
	form       models.ProfileForm
	profileRet models.User
	profileErr error

	avatarPath string
	avatarRet  models.User
	avatarErr  error

	providers    []models.Provider
	providersErr error
	calls        int
}

func (f *fakeProfile) UpdateProfile(_ context.Context, form models.ProfileForm) (models.User, error) {
	f.calls++
	f.form = form
	return f.profileRet, f.profileErr
}

func (f *fakeProfile) UpdateAvatar(_ context.Context, path string) (models.User, error) {
	f.calls++
	f.avatarPath = path
	return f.avatarRet, f.avatarErr
}

func (f *fakeProfile) ListProviders(context.Context) ([]models.Provider, error) {
	f.calls++
	return f.providers, f.providersErr
}

// ---- helpers ----

var johnDoe = models.User{ID: "123user", Name: "John Doe", Email: "johndoe@example.com"}

func newTestApp(st *fakeStore, auth *fakeAuth, prof *fakeProfile) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	a := NewApp(st, auth, prof, logging.NewNop())
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(""))
	return a, out
}

func signedIn() *fakeStore {
	u := johnDoe
	return &fakeStore{user: &u, token: "123token"}
}

func requestErr() error {
	return &client.Error{Op: "test", Status: 400, Err: errors.New("server said no")}
}

// ---- sign in ----

func TestSignIn_Success(t *testing.T) {
	st := &fakeStore{signUser: johnDoe}
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})
	stubInputs(t, []string{"johndoe@example.com"}, []string{"123456"})

	require.NoError(t, a.SignIn(context.Background()))
	assert.Equal(t, "johndoe@example.com", st.lastEmail)
	assert.Equal(t, "123456", st.lastPassword)
	assert.Contains(t, out.String(), "Welcome, John Doe")
}

func TestSignIn_ValidationNeverReachesStore(t *testing.T) {
	st := &fakeStore{}
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})
	stubInputs(t, []string{"not-an-email"}, []string{""})

	err := a.SignIn(context.Background())
	assert.Equal(t, validation.KindValidation, validation.KindOf(err))
	assert.Empty(t, st.lastEmail)
	assert.Contains(t, out.String(), "email must be a valid email")
	assert.Contains(t, out.String(), "password is required")
}

func TestSignIn_RequestFailureIsGeneric(t *testing.T) {
	st := &fakeStore{signErr: requestErr()}
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})
	stubInputs(t, []string{"johndoe@example.com"}, []string{"wrong"})

	err := a.SignIn(context.Background())
	require.ErrorIs(t, err, client.ErrRequestFailed)
	assert.Contains(t, out.String(), "Authentication error")
	assert.NotContains(t, out.String(), "server said no")
}

func TestSignIn_StorageFailureIsGeneric(t *testing.T) {
	st := &fakeStore{signErr: storage.ErrClosed}
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})
	stubInputs(t, []string{"johndoe@example.com"}, []string{"123456"})

	require.ErrorIs(t, a.SignIn(context.Background()), storage.ErrClosed)
	assert.Contains(t, out.String(), "Authentication error")
}

func TestSignIn_InputErrorPropagates(t *testing.T) {
	a, _ := newTestApp(&fakeStore{}, &fakeAuth{}, &fakeProfile{})
	stubInputs(t, nil, nil)

	require.ErrorIs(t, a.SignIn(context.Background()), io.EOF)
}

// ---- sign up / forgot ----

func TestSignUp(t *testing.T) {
	auth := &fakeAuth{}
	a, out := newTestApp(&fakeStore{}, auth, &fakeProfile{})
	stubInputs(t, []string{"John Doe", "johndoe@example.com"}, []string{"123456"})

	require.NoError(t, a.SignUp(context.Background()))
	assert.Equal(t, models.SignUpForm{Name: "John Doe", Email: "johndoe@example.com", Password: "123456"}, auth.signUp)
	assert.Contains(t, out.String(), "Account created")
}

func TestSignUp_ShortPassword(t *testing.T) {
	auth := &fakeAuth{}
	a, out := newTestApp(&fakeStore{}, auth, &fakeProfile{})
	stubInputs(t, []string{"John Doe", "johndoe@example.com"}, []string{"123"})

	require.Error(t, a.SignUp(context.Background()))
	assert.Zero(t, auth.calls)
	assert.Contains(t, out.String(), "password must be at least 6 characters")
}

func TestSignUp_RequestFailure(t *testing.T) {
	auth := &fakeAuth{signUpErr: requestErr()}
	a, out := newTestApp(&fakeStore{}, auth, &fakeProfile{})
	stubInputs(t, []string{"John Doe", "johndoe@example.com"}, []string{"123456"})

	require.Error(t, a.SignUp(context.Background()))
	assert.Contains(t, out.String(), "Registration error")
}

func TestForgotPassword(t *testing.T) {
	auth := &fakeAuth{}
	a, out := newTestApp(&fakeStore{}, auth, &fakeProfile{})
	stubInputs(t, []string{"johndoe@example.com"}, nil)

	require.NoError(t, a.ForgotPassword(context.Background()))
	assert.Equal(t, "johndoe@example.com", auth.forgot.Email)
	assert.Contains(t, out.String(), "Check your inbox")

	auth.forgotErr = requestErr()
	stubInputs(t, []string{"johndoe@example.com"}, nil)
	require.Error(t, a.ForgotPassword(context.Background()))
	assert.Contains(t, out.String(), "Password recovery error")
}

// ---- sign out ----

func TestSignOut(t *testing.T) {
	st := signedIn()
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})

	require.NoError(t, a.SignOut(context.Background()))
	assert.Equal(t, 1, st.signOuts)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Signed out.")

	st = signedIn()
	st.outErr = storage.ErrClosed
	a, out = newTestApp(st, &fakeAuth{}, &fakeProfile{})
	require.Error(t, a.SignOut(context.Background()))
	assert.Contains(t, out.String(), "Could not sign out")
}

// ---- profile screens ----

func TestProfile_KeepsDefaultsWithoutPassword(t *testing.T) {
	prof := &fakeProfile{profileRet: johnDoe}
	a, out := newTestApp(signedIn(), &fakeAuth{}, prof)
	prompts := stubInputs(t, []string{"", "john@new.example.com"}, []string{""})

	require.NoError(t, a.Profile(context.Background()))
	assert.Equal(t, models.ProfileForm{Name: "John Doe", Email: "john@new.example.com"}, prof.form)
	assert.Len(t, *prompts, 3, "no new-password prompts without the current password")
	assert.Contains(t, out.String(), "Profile updated!")
}

func TestProfile_PasswordChange(t *testing.T) {
	prof := &fakeProfile{profileRet: johnDoe}
	a, _ := newTestApp(signedIn(), &fakeAuth{}, prof)
	stubInputs(t, []string{"John Tre", ""}, []string{"old", "123456", "123456"})

	require.NoError(t, a.Profile(context.Background()))
	assert.Equal(t, models.ProfileForm{
		Name:                 "John Tre",
		Email:                "johndoe@example.com",
		CurrentPassword:      "old",
		Password:             "123456",
		PasswordConfirmation: "123456",
	}, prof.form)
}

func TestProfile_MismatchedConfirmation(t *testing.T) {
	prof := &fakeProfile{}
	a, out := newTestApp(signedIn(), &fakeAuth{}, prof)
	stubInputs(t, []string{"", ""}, []string{"old", "123456", "654321"})

	require.Error(t, a.Profile(context.Background()))
	assert.Zero(t, prof.calls)
	assert.Contains(t, out.String(), "password_confirmation must match password")
}

func TestProfile_RequestFailure(t *testing.T) {
	prof := &fakeProfile{profileErr: requestErr()}
	a, out := newTestApp(signedIn(), &fakeAuth{}, prof)
	stubInputs(t, []string{"", ""}, []string{""})

	require.Error(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "Profile update error")
}

func TestAvatar(t *testing.T) {
	withAvatar := johnDoe
	withAvatar.AvatarURL = "http://localhost:3333/files/123user.jpg"
	prof := &fakeProfile{avatarRet: withAvatar}
	a, out := newTestApp(signedIn(), &fakeAuth{}, prof)

	require.NoError(t, a.Avatar(context.Background(), "/tmp/me.jpg"))
	assert.Equal(t, "/tmp/me.jpg", prof.avatarPath)
	assert.Contains(t, out.String(), withAvatar.AvatarURL)

	prof.avatarErr = requestErr()
	require.Error(t, a.Avatar(context.Background(), "/tmp/me.jpg"))
	assert.Contains(t, out.String(), "Avatar update error")
}

func TestDashboard(t *testing.T) {
	prof := &fakeProfile{providers: []models.Provider{{ID: "p1", Name: "Barber One"}}}
	a, out := newTestApp(signedIn(), &fakeAuth{}, prof)

	require.NoError(t, a.Dashboard(context.Background()))
	assert.Contains(t, out.String(), "Welcome, John Doe")
	assert.Contains(t, out.String(), "Barber One")

	prof.providers = nil
	require.NoError(t, a.Dashboard(context.Background()))
	assert.Contains(t, out.String(), "No providers available.")

	prof.providersErr = requestErr()
	require.Error(t, a.Dashboard(context.Background()))
	assert.Contains(t, out.String(), "Could not load the providers")
}

func TestAppointment(t *testing.T) {
	a, out := newTestApp(signedIn(), &fakeAuth{}, &fakeProfile{})

	require.NoError(t, a.Appointment(context.Background(), "2026-03-14T12:00:00Z"))
	assert.Contains(t, out.String(), "Appointment created!")
	assert.Contains(t, out.String(), "Saturday, March 14, 2026 at 12:00")

	require.Error(t, a.Appointment(context.Background(), "tomorrow"))
	assert.Contains(t, out.String(), "Invalid time")
}

func TestWhoAmI(t *testing.T) {
	a, out := newTestApp(signedIn(), &fakeAuth{}, &fakeProfile{})

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "John Doe <johndoe@example.com>")
	assert.NotContains(t, out.String(), "expires", "opaque tokens have no expiry")

	a, _ = newTestApp(&fakeStore{}, &fakeAuth{}, &fakeProfile{})
	require.Error(t, a.WhoAmI(context.Background()))
}

// ---- run ----

func TestRun_WaitsForRestoreAndServesREPL(t *testing.T) {
	silencePrintln(t)
	st := signedIn()
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})
	a.reader = bufio.NewReader(strings.NewReader("whoami\nsignout\nexit\n"))

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Signed in as John Doe")
	assert.Contains(t, out.String(), "John Doe <johndoe@example.com>")
	assert.Equal(t, 1, st.signOuts)
}

func TestRun_RestoreFailureStartsSignedOut(t *testing.T) {
	silencePrintln(t)
	st := &fakeStore{waitErr: storage.ErrClosed}
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})

	a.Run(context.Background())
	assert.Contains(t, out.String(), "Could not restore your session")
}

func TestRun_CanceledWhileLoading(t *testing.T) {
	silencePrintln(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	st := &fakeStore{waitErr: ctx.Err()}
	a, out := newTestApp(st, &fakeAuth{}, &fakeProfile{})

	a.Run(ctx)
	assert.NotContains(t, out.String(), "Could not restore")
}
