package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/common"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

const defaultTimeout = 15 * time.Second

// HTTPClient talks to the GoBarber REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     logging.Logger

	mu    sync.RWMutex
	token string
}

// Options overrides HTTPClient dependencies. Zero values get defaults.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     logging.Logger
}

// NewHTTPClient parses baseURL and builds a client for it.
func NewHTTPClient(baseURL string, opts Options) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base url is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &HTTPClient{baseURL: parsed, httpClient: hc, logger: logger.With("component", "api")}, nil
}

// SetToken sets the bearer token for subsequent requests; "" removes it.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	const op = "SignIn"

	var resp signInResponse
	if err := c.doJSON(ctx, op, http.MethodPost, "/sessions", signInRequest{Email: email, Password: password}, &resp); err != nil {
		return models.User{}, "", err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return models.User{}, "", wrapError(op, errors.New("empty token in response"))
	}
	return resp.User, resp.Token, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, form models.SignUpForm) error {
	return c.doJSON(ctx, "SignUp", http.MethodPost, "/users", form, nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, "ForgotPassword", http.MethodPost, "/password/forgot", forgotPasswordRequest{Email: email}, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, form models.ProfileForm) (models.User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, "UpdateProfile", http.MethodPut, "/profile", form.Payload(), &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// UpdateAvatar uploads image as the multipart field "avatar".
func (c *HTTPClient) UpdateAvatar(ctx context.Context, fileName string, image io.Reader) (models.User, error) {
	const op = "UpdateAvatar"

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, strings.ReplaceAll(fileName, `"`, "")))
	h.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(h)
	if err != nil {
		return models.User{}, wrapError(op, err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return models.User{}, wrapError(op, fmt.Errorf("read avatar: %w", err))
	}
	if err := mw.Close(); err != nil {
		return models.User{}, wrapError(op, err)
	}

	var resp userResponse
	if err := c.send(ctx, op, http.MethodPatch, "/users/avatar", mw.FormDataContentType(), body, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

func (c *HTTPClient) ListProviders(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := c.doJSON(ctx, "ListProviders", http.MethodGet, "/providers", nil, &providers); err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	return providers, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return wrapError(op, err)
		}
		body = buf
		contentType = "application/json"
	}
	return c.send(ctx, op, method, path, contentType, body, out)
}

// send performs the request and decodes a 2xx body into out (if non-nil).
func (c *HTTPClient) send(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	full := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, full.String(), body)
	if err != nil {
		return wrapError(op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	log := c.logger.With("op", op, "request_id", requestID)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return wrapError(op, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
