package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/dmitrijs2005/guidipper/internal/common"
)

// ChatService holds the result page state: the current route, the chat
// session about it and at most one assistant proposal awaiting a decision.
//
// Send creates the session on first use. A reply carrying a diff becomes
// the pending proposal, replacing any earlier one. Approve applies it to the
// route on the backend; Reject drops it and leaves the route alone.
type ChatService interface {
	SetRoute(routeText string, generatedRouteID *int64)
	SetRouteID(id int64)
	RouteID() *int64
	RouteText() string
	Session() *models.ChatSession
	Messages() []models.ChatMessage
	Pending() *models.PendingDiff
	Load(ctx context.Context) error
	Send(ctx context.Context, text string) (*models.ChatMessage, error)
	Approve(ctx context.Context) (*models.ApplyDiffResponse, error)
	Reject()
}

type chatService struct {
	client client.Client
	auth   AuthService

	routeText        string
	generatedRouteID *int64
	session          *models.ChatSession
	messages         []models.ChatMessage
	pending          *models.PendingDiff
}

func NewChatService(c client.Client, auth AuthService) ChatService {
	return &chatService{client: c, auth: auth}
}

// SetRoute starts over with a new route: the session, the messages and any
// pending proposal are dropped.
func (s *chatService) SetRoute(routeText string, generatedRouteID *int64) {
	s.routeText = routeText
	s.generatedRouteID = generatedRouteID
	s.session = nil
	s.messages = nil
	s.pending = nil
}

// SetRouteID records the server id of the current route once it is saved.
// The session and the messages are kept.
func (s *chatService) SetRouteID(id int64) {
	s.generatedRouteID = &id
}

func (s *chatService) RouteID() *int64 {
	if s.generatedRouteID == nil {
		return nil
	}
	id := *s.generatedRouteID
	return &id
}

func (s *chatService) RouteText() string { return s.routeText }

func (s *chatService) Session() *models.ChatSession { return s.session }

func (s *chatService) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *chatService) Pending() *models.PendingDiff {
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// Load replaces the message list with the backend's. Without a session
// there is nothing to load.
func (s *chatService) Load(ctx context.Context) error {
	if s.session == nil {
		s.messages = nil
		return nil
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return err
	}
	msgs, err := s.client.ListChatMessages(ctx, token, s.session.ID)
	if err != nil {
		return s.auth.HandleAPIError(ctx, err)
	}
	s.messages = msgs
	return nil
}

func (s *chatService) ensureSession(ctx context.Context, token string) (*models.ChatSession, error) {
	if s.session != nil {
		return s.session, nil
	}
	sess, err := s.client.CreateChatSession(ctx, token, models.CreateSessionRequest{
		GeneratedRouteID: s.generatedRouteID,
		RouteText:        s.routeText,
	})
	if err != nil {
		return nil, err
	}
	s.session = sess
	return sess, nil
}

// Send posts text to the session, creating it first if needed. Blank text
// is rejected with ErrEmptyMessage without any request.
func (s *chatService) Send(ctx context.Context, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return nil, err
	}

	sess, err := s.ensureSession(ctx, token)
	if err != nil {
		return nil, s.auth.HandleAPIError(ctx, err)
	}

	reply, err := s.client.SendChatMessage(ctx, token, sess.ID, models.SendMessageRequest{
		Content:   text,
		RouteText: s.routeText,
	})
	if err != nil {
		return nil, s.auth.HandleAPIError(ctx, err)
	}

	s.messages = append(s.messages, *reply)
	if diff := reply.Diff(); diff != "" {
		s.pending = &models.PendingDiff{
			MessageID:   reply.ID,
			DiffContent: diff,
			ChatMessage: reply.Content,
		}
	}
	return reply, nil
}

// Approve applies the pending proposal. On failure the route and the
// proposal are kept so the user can retry or reject.
func (s *chatService) Approve(ctx context.Context) (*models.ApplyDiffResponse, error) {
	if s.pending == nil || s.session == nil {
		return nil, common.ErrNoPendingDiff
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.ApplyDiff(ctx, token, s.session.ID, models.ApplyDiffRequest{
		MessageID: s.pending.MessageID,
		RouteText: s.routeText,
	})
	if err != nil {
		return nil, s.auth.HandleAPIError(ctx, err)
	}

	s.routeText = resp.UpdatedRouteText
	s.pending = nil
	return resp, nil
}

func (s *chatService) Reject() {
	s.pending = nil
}
