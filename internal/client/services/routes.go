package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/dmitrijs2005/guidipper/internal/common"
	"github.com/dmitrijs2005/guidipper/internal/filex"
)

// ExportDir is where Export writes route files, relative to the working
// directory.
const ExportDir = "routes"

type RouteService interface {
	Generate(ctx context.Context, prefs models.Preferences) (string, error)
	Save(ctx context.Context, routeText string) (*models.SavedRoute, error)
	ListPast(ctx context.Context) ([]models.SavedRoute, error)
	Delete(ctx context.Context, routeID int64) error
	Export(routeText string) (string, error)
}

type routeService struct {
	client client.Client
	auth   AuthService
	now    func() time.Time
}

func NewRouteService(c client.Client, auth AuthService) RouteService {
	return &routeService{client: c, auth: auth, now: time.Now}
}

// authorized returns the session token after checking the session is still
// valid; an expired one is logged out.
func authorized(ctx context.Context, auth AuthService) (string, error) {
	if err := auth.EnsureValid(ctx); err != nil {
		return "", err
	}
	return auth.Token(), nil
}

func (s *routeService) Generate(ctx context.Context, prefs models.Preferences) (string, error) {
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return "", err
	}
	route, err := s.client.GenerateRoute(ctx, token, prefs)
	if err != nil {
		return "", s.auth.HandleAPIError(ctx, err)
	}
	return route, nil
}

func (s *routeService) Save(ctx context.Context, routeText string) (*models.SavedRoute, error) {
	if strings.TrimSpace(routeText) == "" {
		return nil, common.ErrNoRoute
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return nil, err
	}
	saved, err := s.client.SaveRoute(ctx, token, routeText)
	if err != nil {
		return nil, s.auth.HandleAPIError(ctx, err)
	}
	return saved, nil
}

// ListPast returns the saved routes of the logged-in user.
func (s *routeService) ListPast(ctx context.Context) ([]models.SavedRoute, error) {
	if err := s.auth.EnsureValid(ctx); err != nil {
		return nil, err
	}
	u, _ := s.auth.User()
	routes, err := s.client.ListRoutes(ctx, u.ID)
	if err != nil {
		return nil, s.auth.HandleAPIError(ctx, err)
	}
	return routes, nil
}

func (s *routeService) Delete(ctx context.Context, routeID int64) error {
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return err
	}
	if err := s.client.DeleteRoute(ctx, token, routeID); err != nil {
		return s.auth.HandleAPIError(ctx, err)
	}
	return nil
}

// Export writes routeText to ExportDir/<timestamp>.txt and returns the path.
func (s *routeService) Export(routeText string) (string, error) {
	if strings.TrimSpace(routeText) == "" {
		return "", common.ErrNoRoute
	}
	name := fmt.Sprintf("%s.txt", s.now().Format("20060102-150405"))
	return filex.SaveText(ExportDir, name, routeText)
}
