package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/storage"
	"github.com/dmitrijs2005/gobarber/internal/common"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// ErrNotAuthenticated is returned by UpdateUser when nobody is signed in.
var ErrNotAuthenticated = errors.New("not authenticated")

// Gateway exchanges credentials for a user and a token.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (models.User, string, error)
}

// TokenSetter receives the current token ("" when signed out). The HTTP
// client implements it to set the Authorization header.
type TokenSetter interface {
	SetToken(token string)
}

type Options struct {
	// KeyPrefix namespaces the persisted entries; defaults to "@GoBarber".
	KeyPrefix string
	Tokens    TokenSetter
	Logger    logging.Logger
}

type Store struct {
	gateway Gateway
	kv      storage.Storage
	tokens  TokenSetter
	logger  logging.Logger

	tokenKey string
	userKey  string

	mu      sync.RWMutex
	state   State
	session models.Session
	subs    map[int]chan Snapshot
	nextSub int

	initOnce sync.Once
	initErr  error
	ready    chan struct{}
}

// New returns a store in the Loading state. Call Initialize or Start to
// restore the persisted session.
func New(gateway Gateway, kv storage.Storage, opts Options) *Store {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = common.DefaultKeyPrefix
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Store{
		gateway:  gateway,
		kv:       kv,
		tokens:   opts.Tokens,
		logger:   logger.With("component", "session"),
		tokenKey: TokenKey(prefix),
		userKey:  UserKey(prefix),
		state:    Loading,
		subs:     make(map[int]chan Snapshot),
		ready:    make(chan struct{}),
	}
}

func TokenKey(prefix string) string { return prefix + ":token" }

func UserKey(prefix string) string { return prefix + ":user" }

// Start runs Initialize in a goroutine. The outcome is observable through
// Ready, Wait and Subscribe.
func (s *Store) Start(ctx context.Context) {
	go func() {
		_ = s.Initialize(ctx)
	}()
}

// Initialize restores the session with a single batched read. Only the first
// call does any work; later calls return the first result. A storage error
// leaves the store Anonymous and is returned.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		defer close(s.ready)
		s.initErr = s.restore(ctx)
	})
	return s.initErr
}

func (s *Store) restore(ctx context.Context) error {
	lookups, err := s.kv.MultiGet(ctx, []string{s.tokenKey, s.userKey})
	if err != nil {
		s.logger.Error(ctx, "restore failed", "error", err)
		s.finishRestore(models.Session{})
		return err
	}

	values := storage.Values(lookups)
	token, hasToken := values[s.tokenKey]
	rawUser, hasUser := values[s.userKey]

	switch {
	case !hasToken && !hasUser:
		s.logger.Debug(ctx, "no persisted session")
		s.finishRestore(models.Session{})
		return nil
	case !hasToken || !hasUser || token == "":
		s.logger.Warn(ctx, "partial persisted session ignored", "has_token", hasToken, "has_user", hasUser)
		s.finishRestore(models.Session{})
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn(ctx, "persisted user is not valid JSON", "error", err)
		s.finishRestore(models.Session{})
		return nil
	}

	s.logger.Info(ctx, "session restored", "user_id", user.ID)
	s.finishRestore(models.NewSession(token, user))
	return nil
}

// finishRestore applies the restored session unless a SignIn or SignOut
// already moved the store out of Loading.
func (s *Store) finishRestore(sess models.Session) {
	s.mu.Lock()
	if s.state != Loading {
		s.mu.Unlock()
		return
	}
	s.setLocked(sess)
	s.mu.Unlock()
}

// Ready is closed once the initial restore completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the restore completed and returns its error, or until
// ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.initErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading reports whether the initial restore is still running.
func (s *Store) Loading() bool {
	return s.State() == Loading
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session.User == nil {
		return models.User{}, false
	}
	return *s.session.User, true
}

func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session.Token == nil {
		return "", false
	}
	return *s.session.Token, true
}

// SignIn authenticates through the gateway, persists token and user in one
// batched write and then updates memory.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	user, token, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := s.kv.MultiSet(ctx, []storage.Pair{
		{Key: s.tokenKey, Value: token},
		{Key: s.userKey, Value: string(rawUser)},
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.setLocked(models.NewSession(token, user))
	s.mu.Unlock()
	return nil
}

// SignOut removes both entries in one batched call and clears memory. It is
// safe to call when nobody is signed in.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.kv.MultiRemove(ctx, []string{s.tokenKey, s.userKey}); err != nil {
		return err
	}

	s.mu.Lock()
	s.setLocked(models.Session{})
	s.mu.Unlock()

	s.logger.Info(ctx, "signed out")
	return nil
}

// UpdateUser replaces the persisted user entry and the in-memory user. The
// token is left alone and the new user's ID is not compared with the old one.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	if _, ok := s.Token(); !ok {
		return ErrNotAuthenticated
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.userKey, string(rawUser)); err != nil {
		return err
	}

	s.mu.Lock()
	if s.session.Token != nil {
		s.setLocked(models.NewSession(*s.session.Token, user))
	}
	s.mu.Unlock()
	return nil
}

// Subscribe returns a channel that receives a Snapshot after every change.
// Slow readers only see the latest snapshot. Call cancel to stop.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// setLocked must be called with s.mu held for writing.
func (s *Store) setLocked(sess models.Session) {
	if sess.Authenticated() {
		s.state = Authenticated
	} else {
		s.state = Anonymous
		sess = models.Session{}
	}
	s.session = sess

	if s.tokens != nil {
		token := ""
		if sess.Token != nil {
			token = *sess.Token
		}
		s.tokens.SetToken(token)
	}

	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{State: s.state, Session: s.session.Clone()}
}
