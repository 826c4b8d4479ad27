package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/forms"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/dmitrijs2005/guidipper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/guidipper/internal/common"
	"github.com/dmitrijs2005/guidipper/internal/filex"
)

type ProfileService interface {
	UploadAvatar(ctx context.Context, path string) (string, error)
	AvatarURL(ctx context.Context) (string, error)
	UpdateUsername(ctx context.Context, name string) (string, error)
	UploadBookmarks(ctx context.Context, path string) (*models.MessageResponse, error)
	HasPreviousBookmarks(ctx context.Context) (bool, error)
}

type profileService struct {
	client client.Client
	auth   AuthService
	db     *sql.DB
	apiURL string
}

// NewProfileService builds a ProfileService. apiURL prefixes the relative
// avatar paths returned by the backend.
func NewProfileService(c client.Client, auth AuthService, db *sql.DB, apiURL string) ProfileService {
	return &profileService{client: c, auth: auth, db: db, apiURL: strings.TrimRight(apiURL, "/")}
}

func (s *profileService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// UploadAvatar sends the image, records the new avatar on the user and caches
// its absolute URL under the legacy avatar key. It returns the absolute URL.
func (s *profileService) UploadAvatar(ctx context.Context, path string) (string, error) {
	if _, err := filex.ReadNonEmpty(path); err != nil {
		return "", err
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return "", err
	}

	rel, err := s.client.UploadAvatar(ctx, token, path)
	if err != nil {
		return "", s.auth.HandleAPIError(ctx, err)
	}
	full := s.apiURL + rel

	if err := s.getMetadataRepo().Set(ctx, common.AvatarURLKey, []byte(full)); err != nil {
		return "", fmt.Errorf("avatar cache error: %w", err)
	}
	if err := s.auth.UpdateUser(ctx, models.UserPatch{AvatarURL: rel}); err != nil {
		return "", err
	}
	return full, nil
}

// AvatarURL returns the cached absolute avatar URL, or "" when none is known.
func (s *profileService) AvatarURL(ctx context.Context) (string, error) {
	v, err := s.getMetadataRepo().Get(ctx, common.AvatarURLKey)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		return string(v), nil
	}
	if u, ok := s.auth.User(); ok && u.AvatarURL != "" {
		return s.apiURL + u.AvatarURL, nil
	}
	return "", nil
}

func (s *profileService) UpdateUsername(ctx context.Context, name string) (string, error) {
	name, err := forms.ValidateUsername(name)
	if err != nil {
		return "", err
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return "", err
	}

	updated, err := s.client.UpdateUsername(ctx, token, name)
	if err != nil {
		return "", s.auth.HandleAPIError(ctx, err)
	}
	if err := s.auth.UpdateUser(ctx, models.UserPatch{Username: updated}); err != nil {
		return "", err
	}
	return updated, nil
}

// UploadBookmarks sends a Google Maps "Saved places" export. The file must
// exist, be non-empty and hold JSON.
func (s *profileService) UploadBookmarks(ctx context.Context, path string) (*models.MessageResponse, error) {
	b, err := filex.ReadNonEmpty(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(b) {
		return nil, ErrInvalidBookmarks
	}
	token, err := authorized(ctx, s.auth)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.UploadBookmarks(ctx, token, path)
	if err != nil {
		return nil, s.auth.HandleAPIError(ctx, err)
	}
	return resp, nil
}

func (s *profileService) HasPreviousBookmarks(ctx context.Context) (bool, error) {
	u, ok := s.auth.User()
	if !ok {
		return false, common.ErrNotAuthenticated
	}
	exists, err := s.client.HasPreviousBookmarks(ctx, u.ID)
	if err != nil {
		return false, s.auth.HandleAPIError(ctx, err)
	}
	return exists, nil
}
