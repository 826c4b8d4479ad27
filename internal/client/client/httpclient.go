package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/dmitrijs2005/guidipper/internal/common"
	"github.com/dmitrijs2005/guidipper/internal/logging"
	"github.com/dmitrijs2005/guidipper/internal/netx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/dmitrijs2005/guidipper/internal/client/client"

// Options tunes an HTTPClient. Zero values pick defaults; a nil Tracer or
// Meter falls back to the global OpenTelemetry providers.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	Tracer     trace.Tracer
	Meter      metric.Meter
	Logger     logging.Logger
}

// HTTPClient implements Client over the backend's JSON/multipart HTTP API.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	tracer   trace.Tracer
	requests metric.Int64Counter
	log      logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, opts Options) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api url is empty")
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	meter := opts.Meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	requests, err := meter.Int64Counter("guidipper.api.requests",
		metric.WithDescription("Backend API requests by route and status"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}

	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     hc,
		tracer:   tracer,
		requests: requests,
		log:      log,
	}, nil
}

// call describes one API request. route is the path template used for span
// names and metrics; path is the concrete path.
type call struct {
	method      string
	route       string
	path        string
	token       string
	auth        bool
	body        io.Reader
	contentType string
}

func jsonCall(method, route, path string, in any) (call, error) {
	c := call{method: method, route: route, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return c, fmt.Errorf("failed to marshal request body: %w", err)
		}
		c.body = bytes.NewReader(b)
		c.contentType = "application/json"
	}
	return c, nil
}

func (c call) withToken(token string) call {
	c.token = token
	c.auth = true
	return c
}

func (c *HTTPClient) do(ctx context.Context, r call, out any) (err error) {
	if r.auth && r.token == "" {
		return ErrNoToken
	}

	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, r.method+" "+r.route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.method),
			attribute.String("http.route", r.route),
			attribute.String("request.id", requestID),
		))
	status := 0
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		span.End()
		c.requests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("http.route", r.route),
			attribute.Int("http.response.status_code", status),
		))
	}()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.auth {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "route", r.route, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.log.Debug(ctx, "api request", "method", r.method, "route", r.route, "status", status,
		"request_id", requestID, "elapsed", time.Since(start))

	if status >= http.StatusBadRequest {
		return mapStatus(status, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// mapStatus turns a failure response into an error. The message comes from
// "detail" (FastAPI style), "error" or "message", falling back to the body.
func mapStatus(status int, body []byte) error {
	msg := errorMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return &APIError{StatusCode: status, Message: msg}
}

func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, k := range []string{"detail", "error", "message"} {
		if s, ok := payload[k].(string); ok && s != "" {
			return s
		}
	}
	if d, ok := payload["detail"]; ok {
		b, _ := json.Marshal(d)
		return string(b)
	}
	return ""
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.SignupResponse, error) {
	r, err := jsonCall(http.MethodPost, "/register", "/register", models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var resp models.SignupResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	r, err := jsonCall(http.MethodPost, "/login", "/login", models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response has no access token")
	}
	return &resp, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	r, _ := jsonCall(http.MethodGet, "/me", "/me", nil)
	var u models.User
	if err := c.do(ctx, r.withToken(token), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) uploadFile(ctx context.Context, route, token, path string, out any) error {
	if token == "" {
		return ErrNoToken
	}
	form, err := netx.LocalFileForm("file", path)
	if err != nil {
		return err
	}
	r := call{
		method:      http.MethodPost,
		route:       route,
		path:        route,
		body:        form.Body,
		contentType: form.ContentType,
	}
	return c.do(ctx, r.withToken(token), out)
}

func (c *HTTPClient) UploadBookmarks(ctx context.Context, token, path string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.uploadFile(ctx, "/upload-bookmarks", token, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) HasPreviousBookmarks(ctx context.Context, userID int64) (bool, error) {
	r, _ := jsonCall(http.MethodGet, "/check-bookmarks/{user_id}", fmt.Sprintf("/check-bookmarks/%d", userID), nil)
	var resp models.BookmarksCheckResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) GenerateRoute(ctx context.Context, token string, prefs models.Preferences) (string, error) {
	r, err := jsonCall(http.MethodPost, "/generate-route", "/generate-route", prefs)
	if err != nil {
		return "", err
	}
	var resp models.GenerateRouteResponse
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return "", err
	}
	return resp.GeneratedRoute, nil
}

func (c *HTTPClient) SaveRoute(ctx context.Context, token, routeText string) (*models.SavedRoute, error) {
	r, err := jsonCall(http.MethodPost, "/routes", "/routes", models.SaveRouteRequest{RouteText: routeText})
	if err != nil {
		return nil, err
	}
	var resp models.SavedRoute
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListRoutes(ctx context.Context, userID int64) ([]models.SavedRoute, error) {
	r, _ := jsonCall(http.MethodGet, "/routes/{user_id}", fmt.Sprintf("/routes/%d", userID), nil)
	var resp models.RoutesResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return resp.Routes, nil
}

func (c *HTTPClient) DeleteRoute(ctx context.Context, token string, routeID int64) error {
	r, _ := jsonCall(http.MethodDelete, "/routes/{route_id}", fmt.Sprintf("/routes/%d", routeID), nil)
	return c.do(ctx, r.withToken(token), nil)
}

func (c *HTTPClient) CreateChatSession(ctx context.Context, token string, req models.CreateSessionRequest) (*models.ChatSession, error) {
	r, err := jsonCall(http.MethodPost, "/chat/sessions", "/chat/sessions", req)
	if err != nil {
		return nil, err
	}
	var resp models.ChatSession
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListChatMessages(ctx context.Context, token string, sessionID int64) ([]models.ChatMessage, error) {
	r, _ := jsonCall(http.MethodGet, "/chat/sessions/{id}/messages", fmt.Sprintf("/chat/sessions/%d/messages", sessionID), nil)
	var resp []models.ChatMessage
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) SendChatMessage(ctx context.Context, token string, sessionID int64, req models.SendMessageRequest) (*models.ChatMessage, error) {
	r, err := jsonCall(http.MethodPost, "/chat/sessions/{id}/messages", fmt.Sprintf("/chat/sessions/%d/messages", sessionID), req)
	if err != nil {
		return nil, err
	}
	var resp models.ChatMessage
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ApplyDiff(ctx context.Context, token string, sessionID int64, req models.ApplyDiffRequest) (*models.ApplyDiffResponse, error) {
	r, err := jsonCall(http.MethodPost, "/chat/sessions/{id}/apply-diff", fmt.Sprintf("/chat/sessions/%d/apply-diff", sessionID), req)
	if err != nil {
		return nil, err
	}
	var resp models.ApplyDiffResponse
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, token, path string) (string, error) {
	var resp models.AvatarResponse
	if err := c.uploadFile(ctx, "/upload-avatar", token, path, &resp); err != nil {
		return "", err
	}
	return resp.AvatarURL, nil
}

// UpdateUsername sends the new name as a multipart form field. When the
// backend does not echo the name back, the requested one is returned.
func (c *HTTPClient) UpdateUsername(ctx context.Context, token, username string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	form, err := netx.ValueForm("username", username)
	if err != nil {
		return "", err
	}
	r := call{
		method:      http.MethodPut,
		route:       "/update-username",
		path:        "/update-username",
		body:        form.Body,
		contentType: form.ContentType,
	}
	var resp models.UsernameResponse
	if err := c.do(ctx, r.withToken(token), &resp); err != nil {
		return "", err
	}
	if resp.Username == "" {
		return username, nil
	}
	return resp.Username, nil
}
