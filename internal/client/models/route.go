package models

import "time"

type GenerateRouteResponse struct {
	GeneratedRoute string `json:"generated_route"`
}

type SaveRouteRequest struct {
	RouteText string `json:"route_text"`
}

// SavedRoute is a generated route persisted by the backend.
type SavedRoute struct {
	ID        int64     `json:"id"`
	RouteText string    `json:"route_text"`
	CreatedAt time.Time `json:"created_at"`
}

type RoutesResponse struct {
	Routes []SavedRoute `json:"routes"`
}

type BookmarksCheckResponse struct {
	Exists bool `json:"exists"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

type UsernameResponse struct {
	Username string `json:"username"`
}
