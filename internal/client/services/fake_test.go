package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "guidipper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

// getMeta returns nil for an absent key.
func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// ---- fake client ----

// fakeClient implements client.Client for the service tests. Unset funcs
// return zero values.
type fakeClient struct {
	RegisterFn        func(email, password string) (*models.SignupResponse, error)
	LoginFn           func(email, password string) (*models.LoginResponse, error)
	MeFn              func(token string) (*models.User, error)
	UploadBookmarksFn func(token, path string) (*models.MessageResponse, error)
	HasBookmarksFn    func(userID int64) (bool, error)
	GenerateRouteFn   func(token string, prefs models.Preferences) (string, error)
	SaveRouteFn       func(token, text string) (*models.SavedRoute, error)
	ListRoutesFn      func(userID int64) ([]models.SavedRoute, error)
	DeleteRouteFn     func(token string, id int64) error
	CreateSessionFn   func(token string, req models.CreateSessionRequest) (*models.ChatSession, error)
	ListMessagesFn    func(token string, sessionID int64) ([]models.ChatMessage, error)
	SendMessageFn     func(token string, sessionID int64, req models.SendMessageRequest) (*models.ChatMessage, error)
	ApplyDiffFn       func(token string, sessionID int64, req models.ApplyDiffRequest) (*models.ApplyDiffResponse, error)
	UploadAvatarFn    func(token, path string) (string, error)
	UpdateUsernameFn  func(token, name string) (string, error)

	Calls []string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(_ context.Context, email, password string) (*models.SignupResponse, error) {
	f.Calls = append(f.Calls, "Register")
	if f.RegisterFn == nil {
		return &models.SignupResponse{}, nil
	}
	return f.RegisterFn(email, password)
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	f.Calls = append(f.Calls, "Login")
	if f.LoginFn == nil {
		return &models.LoginResponse{AccessToken: "tok", User: models.User{ID: 1, Email: email}}, nil
	}
	return f.LoginFn(email, password)
}

func (f *fakeClient) Me(_ context.Context, token string) (*models.User, error) {
	f.Calls = append(f.Calls, "Me")
	if f.MeFn == nil {
		return &models.User{}, nil
	}
	return f.MeFn(token)
}

func (f *fakeClient) UploadBookmarks(_ context.Context, token, path string) (*models.MessageResponse, error) {
	f.Calls = append(f.Calls, "UploadBookmarks")
	if f.UploadBookmarksFn == nil {
		return &models.MessageResponse{}, nil
	}
	return f.UploadBookmarksFn(token, path)
}

func (f *fakeClient) HasPreviousBookmarks(_ context.Context, userID int64) (bool, error) {
	f.Calls = append(f.Calls, "HasPreviousBookmarks")
	if f.HasBookmarksFn == nil {
		return false, nil
	}
	return f.HasBookmarksFn(userID)
}

func (f *fakeClient) GenerateRoute(_ context.Context, token string, prefs models.Preferences) (string, error) {
	f.Calls = append(f.Calls, "GenerateRoute")
	if f.GenerateRouteFn == nil {
		return "", nil
	}
	return f.GenerateRouteFn(token, prefs)
}

func (f *fakeClient) SaveRoute(_ context.Context, token, text string) (*models.SavedRoute, error) {
	f.Calls = append(f.Calls, "SaveRoute")
	if f.SaveRouteFn == nil {
		return &models.SavedRoute{RouteText: text}, nil
	}
	return f.SaveRouteFn(token, text)
}

func (f *fakeClient) ListRoutes(_ context.Context, userID int64) ([]models.SavedRoute, error) {
	f.Calls = append(f.Calls, "ListRoutes")
	if f.ListRoutesFn == nil {
		return nil, nil
	}
	return f.ListRoutesFn(userID)
}

func (f *fakeClient) DeleteRoute(_ context.Context, token string, id int64) error {
	f.Calls = append(f.Calls, "DeleteRoute")
	if f.DeleteRouteFn == nil {
		return nil
	}
	return f.DeleteRouteFn(token, id)
}

func (f *fakeClient) CreateChatSession(_ context.Context, token string, req models.CreateSessionRequest) (*models.ChatSession, error) {
	f.Calls = append(f.Calls, "CreateChatSession")
	if f.CreateSessionFn == nil {
		return &models.ChatSession{ID: 1}, nil
	}
	return f.CreateSessionFn(token, req)
}

func (f *fakeClient) ListChatMessages(_ context.Context, token string, sessionID int64) ([]models.ChatMessage, error) {
	f.Calls = append(f.Calls, "ListChatMessages")
	if f.ListMessagesFn == nil {
		return nil, nil
	}
	return f.ListMessagesFn(token, sessionID)
}

func (f *fakeClient) SendChatMessage(_ context.Context, token string, sessionID int64, req models.SendMessageRequest) (*models.ChatMessage, error) {
	f.Calls = append(f.Calls, "SendChatMessage")
	if f.SendMessageFn == nil {
		return &models.ChatMessage{Role: models.RoleAssistant}, nil
	}
	return f.SendMessageFn(token, sessionID, req)
}

func (f *fakeClient) ApplyDiff(_ context.Context, token string, sessionID int64, req models.ApplyDiffRequest) (*models.ApplyDiffResponse, error) {
	f.Calls = append(f.Calls, "ApplyDiff")
	if f.ApplyDiffFn == nil {
		return &models.ApplyDiffResponse{}, nil
	}
	return f.ApplyDiffFn(token, sessionID, req)
}

func (f *fakeClient) UploadAvatar(_ context.Context, token, path string) (string, error) {
	f.Calls = append(f.Calls, "UploadAvatar")
	if f.UploadAvatarFn == nil {
		return "", nil
	}
	return f.UploadAvatarFn(token, path)
}

func (f *fakeClient) UpdateUsername(_ context.Context, token, name string) (string, error) {
	f.Calls = append(f.Calls, "UpdateUsername")
	if f.UpdateUsernameFn == nil {
		return name, nil
	}
	return f.UpdateUsernameFn(token, name)
}

// loggedIn returns an AuthService with an active session for user 5.
func loggedIn(t *testing.T, fc *fakeClient, db *sql.DB, clock *fixedClock) AuthService {
	t.Helper()
	fc.LoginFn = func(email, _ string) (*models.LoginResponse, error) {
		return &models.LoginResponse{AccessToken: "tok", User: models.User{ID: 5, Email: email}}, nil
	}
	auth := NewAuthService(fc, db, WithClock(clock.Now))
	_, err := auth.Login(context.Background(), "a@b.c", "secret123")
	require.NoError(t, err)
	fc.Calls = nil
	return auth
}
