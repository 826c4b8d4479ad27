package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatSession struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	GeneratedRouteID *int64    `json:"generated_route_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	RouteText        *string   `json:"route_text,omitempty"`
}

type ChatMessage struct {
	ID            int64     `json:"id"`
	ChatSessionID int64     `json:"chat_session_id"`
	Role          Role      `json:"role"`
	Content       string    `json:"content"`
	DiffContent   *string   `json:"diff_content,omitempty"`
	ChatMessage   *string   `json:"chat_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Diff returns the proposed route change carried by the message, or "".
func (m ChatMessage) Diff() string {
	if m.DiffContent == nil {
		return ""
	}
	return *m.DiffContent
}

type CreateSessionRequest struct {
	GeneratedRouteID *int64 `json:"generated_route_id"`
	RouteText        string `json:"route_text"`
}

type SendMessageRequest struct {
	Content   string `json:"content"`
	RouteText string `json:"route_text"`
}

type ApplyDiffRequest struct {
	MessageID int64  `json:"message_id"`
	RouteText string `json:"route_text"`
}

type ApplyDiffResponse struct {
	Message          string `json:"message"`
	UpdatedRouteText string `json:"updated_route_text"`
}

// PendingDiff is an assistant proposal waiting for the user's decision.
type PendingDiff struct {
	MessageID   int64
	DiffContent string
	ChatMessage string
}
