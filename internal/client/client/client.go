package client

import (
	"context"

	"github.com/dmitrijs2005/guidipper/internal/client/models"
)

// Client is the GuiDipper backend API. Methods taking a token send it as a
// bearer credential and fail with ErrNoToken when it is empty.
type Client interface {
	Register(ctx context.Context, email, password string) (*models.SignupResponse, error)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)

	UploadBookmarks(ctx context.Context, token, path string) (*models.MessageResponse, error)
	HasPreviousBookmarks(ctx context.Context, userID int64) (bool, error)

	GenerateRoute(ctx context.Context, token string, prefs models.Preferences) (string, error)
	SaveRoute(ctx context.Context, token, routeText string) (*models.SavedRoute, error)
	ListRoutes(ctx context.Context, userID int64) ([]models.SavedRoute, error)
	DeleteRoute(ctx context.Context, token string, routeID int64) error

	CreateChatSession(ctx context.Context, token string, req models.CreateSessionRequest) (*models.ChatSession, error)
	ListChatMessages(ctx context.Context, token string, sessionID int64) ([]models.ChatMessage, error)
	SendChatMessage(ctx context.Context, token string, sessionID int64, req models.SendMessageRequest) (*models.ChatMessage, error)
	ApplyDiff(ctx context.Context, token string, sessionID int64, req models.ApplyDiffRequest) (*models.ApplyDiffResponse, error)

	UploadAvatar(ctx context.Context, token, path string) (string, error)
	UpdateUsername(ctx context.Context, token, username string) (string, error)
}
