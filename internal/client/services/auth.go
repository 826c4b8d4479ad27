// Package services contains the application services of the GuiDipper
// client. This file holds the session lifecycle: signup, login, logout,
// start-up validation and the persisted user record.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/dmitrijs2005/guidipper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/guidipper/internal/common"
	"github.com/dmitrijs2005/guidipper/internal/dbx"
	"github.com/dmitrijs2005/guidipper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a login is trusted when the token itself does
// not say otherwise.
const DefaultTokenTTL = 30 * time.Minute

// AuthService owns the current session.
//
// Contract:
//   - Signup: create an account; no session is started.
//   - Login: authenticate and persist token, user and expiry together.
//   - Logout: forget the session and remove the auth keys from the store.
//   - CheckAuth: restore a stored session, or log out if it is incomplete,
//     unreadable or expired.
//   - HandleAPIError: turn an auth failure from the API into a forced logout.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.SignupResponse, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (bool, error)
	EnsureValid(ctx context.Context) error
	IsAuthenticated() bool
	Token() string
	User() (models.User, bool)
	Session() (models.Session, bool)
	UpdateUser(ctx context.Context, patch models.UserPatch) error
	RefreshUser(ctx context.Context) (*models.User, error)
	HandleAPIError(ctx context.Context, err error) error
}

type AuthOption func(*authService)

// WithTokenTTL overrides DefaultTokenTTL. Non-positive values are ignored.
func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(a *authService) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

func WithAuthLogger(l logging.Logger) AuthOption {
	return func(a *authService) { a.log = l }
}

type authService struct {
	client client.Client
	db     *sql.DB
	ttl    time.Duration
	now    func() time.Time
	log    logging.Logger

	token     string
	user      *models.User
	expiresAt time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(c client.Client, db *sql.DB, opts ...AuthOption) AuthService {
	a := &authService{
		client: c,
		db:     db,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
		log:    logging.Nop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Signup(ctx context.Context, email, password string) (*models.SignupResponse, error) {
	resp, err := a.client.Register(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	a.log.Info(ctx, "account created", "email", email)
	return resp, nil
}

// Login authenticates, then writes token, user and expiry in one
// transaction. The in-memory session is only set once they are stored.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	expiresAt := a.expiryFor(resp.AccessToken)
	if err := a.saveSession(ctx, resp.AccessToken, resp.User, expiresAt); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	u := resp.User
	a.token = resp.AccessToken
	a.user = &u
	a.expiresAt = expiresAt
	a.log.Info(ctx, "logged in", "user_id", u.ID, "expires_at", expiresAt)
	return &u, nil
}

// expiryFor is now plus the TTL, or the token's own exp claim when that comes
// first. Tokens that are not JWTs only get the TTL.
func (a *authService) expiryFor(token string) time.Time {
	expiresAt := a.now().Add(a.ttl)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return expiresAt
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return expiresAt
	}
	if exp.Time.Before(expiresAt) {
		return exp.Time
	}
	return expiresAt
}

func (a *authService) saveSession(ctx context.Context, token string, user models.User, expiresAt time.Time) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	expiry := strconv.FormatInt(expiresAt.UnixMilli(), 10)

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.UserKey, userJSON); err != nil {
			return err
		}
		return repo.Set(ctx, common.ExpiryKey, []byte(expiry))
	})
}

// Logout clears the in-memory session and the three auth keys. Other keys,
// such as the avatar cache, stay.
func (a *authService) Logout(ctx context.Context) error {
	a.token = ""
	a.user = nil
	a.expiresAt = time.Time{}

	if err := a.getMetadataRepo().DeleteKeys(ctx, common.AuthKeys...); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

// CheckAuth restores the stored session. Anything missing, unreadable or
// expired ends in a logout and (false, nil); only store failures are errors.
func (a *authService) CheckAuth(ctx context.Context) (bool, error) {
	repo := a.getMetadataRepo()

	token, err := repo.Get(ctx, common.TokenKey)
	if err != nil {
		return false, err
	}
	userJSON, err := repo.Get(ctx, common.UserKey)
	if err != nil {
		return false, err
	}
	expiry, err := repo.Get(ctx, common.ExpiryKey)
	if err != nil {
		return false, err
	}

	if len(token) == 0 || len(userJSON) == 0 || len(expiry) == 0 {
		return false, a.Logout(ctx)
	}

	ms, err := strconv.ParseInt(string(expiry), 10, 64)
	if err != nil {
		a.log.Warn(ctx, "stored session expiry is unreadable", "error", err)
		return false, a.Logout(ctx)
	}
	expiresAt := time.UnixMilli(ms)
	if a.now().After(expiresAt) {
		a.log.Info(ctx, "stored session expired", "expired_at", expiresAt)
		return false, a.Logout(ctx)
	}

	var u models.User
	if err := json.Unmarshal(userJSON, &u); err != nil {
		a.log.Warn(ctx, "stored user is unreadable", "error", err)
		return false, a.Logout(ctx)
	}

	a.token = string(token)
	a.user = &u
	a.expiresAt = expiresAt
	return true, nil
}

// EnsureValid fails with ErrNotAuthenticated when there is no session and
// with ErrSessionExpired, after logging out, when it has run out.
func (a *authService) EnsureValid(ctx context.Context) error {
	if !a.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	if a.now().After(a.expiresAt) {
		if err := a.Logout(ctx); err != nil {
			return err
		}
		return common.ErrSessionExpired
	}
	return nil
}

func (a *authService) IsAuthenticated() bool {
	return a.token != "" && a.user != nil
}

func (a *authService) Token() string { return a.token }

func (a *authService) User() (models.User, bool) {
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

func (a *authService) Session() (models.Session, bool) {
	if !a.IsAuthenticated() {
		return models.Session{}, false
	}
	return models.Session{Token: a.token, ExpiresAt: a.expiresAt, User: *a.user}, true
}

// UpdateUser merges patch into the current user and persists it. Without a
// session it does nothing.
func (a *authService) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	if a.user == nil {
		return nil
	}
	next := a.user.Merge(patch)

	b, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := a.getMetadataRepo().Set(ctx, common.UserKey, b); err != nil {
		return fmt.Errorf("user saving error: %w", err)
	}
	a.user = &next
	return nil
}

// RefreshUser fetches the current user from the API and merges it in.
func (a *authService) RefreshUser(ctx context.Context) (*models.User, error) {
	me, err := a.client.Me(ctx, a.token)
	if err != nil {
		return nil, a.HandleAPIError(ctx, err)
	}
	patch := models.UserPatch{Email: me.Email, Username: me.Username, AvatarURL: me.AvatarURL}
	if err := a.UpdateUser(ctx, patch); err != nil {
		return nil, err
	}
	u, _ := a.User()
	return &u, nil
}

// HandleAPIError logs the user out when err means the token is missing,
// rejected or expired, and reports ErrSessionExpired instead. Other errors
// pass through.
func (a *authService) HandleAPIError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrUnauthorized) ||
		errors.Is(err, client.ErrNoToken) ||
		errors.Is(err, common.ErrSessionExpired) {
		a.log.Info(ctx, "forced logout", "reason", err)
		if lerr := a.Logout(ctx); lerr != nil {
			return errors.Join(common.ErrSessionExpired, lerr)
		}
		return common.ErrSessionExpired
	}
	return err
}
