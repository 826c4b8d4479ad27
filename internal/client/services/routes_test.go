package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/dmitrijs2005/guidipper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteService_Generate(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	auth := loggedIn(t, fc, db, &fixedClock{t: t0})

	prefs := models.Preferences{CenterLandmark: "Times Square", TransportModes: []string{models.TransportWalk}}
	fc.GenerateRouteFn = func(token string, p models.Preferences) (string, error) {
		assert.Equal(t, "tok", token)
		assert.Equal(t, prefs, p)
		return "Day 1: MoMA", nil
	}

	got, err := NewRouteService(fc, auth).Generate(context.Background(), prefs)
	require.NoError(t, err)
	assert.Equal(t, "Day 1: MoMA", got)
}

func TestRouteService_GenerateWithoutSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	auth := NewAuthService(fc, db)

	_, err := NewRouteService(fc, auth).Generate(context.Background(), models.Preferences{})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Empty(t, fc.Calls)
}

func TestRouteService_UnauthorizedForcesLogout(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	auth := loggedIn(t, fc, db, &fixedClock{t: t0})
	fc.GenerateRouteFn = func(string, models.Preferences) (string, error) {
		return "", fmt.Errorf("%w: Could not validate credentials", client.ErrUnauthorized)
	}

	_, err := NewRouteService(fc, auth).Generate(context.Background(), models.Preferences{})
	require.ErrorIs(t, err, common.ErrSessionExpired)
	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, getMeta(t, db, common.TokenKey))
}

func TestRouteService_ExpiredSessionMidRun(t *testing.T) {
	db := setupDB(t)
	clock := &fixedClock{t: t0}
	fc := &fakeClient{}
	auth := loggedIn(t, fc, db, clock)
	clock.Advance(time.Hour)

	_, err := NewRouteService(fc, auth).Save(context.Background(), "Day 1")
	require.ErrorIs(t, err, common.ErrSessionExpired)
	assert.Empty(t, fc.Calls)
}

func TestRouteService_SaveListDelete(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	auth := loggedIn(t, fc, db, &fixedClock{t: t0})
	svc := NewRouteService(fc, auth)
	ctx := context.Background()

	_, err := svc.Save(ctx, "   ")
	require.ErrorIs(t, err, common.ErrNoRoute)

	fc.SaveRouteFn = func(token, text string) (*models.SavedRoute, error) {
		return &models.SavedRoute{ID: 11, RouteText: text}, nil
	}
	saved, err := svc.Save(ctx, "Day 1")
	require.NoError(t, err)
	assert.Equal(t, int64(11), saved.ID)

	fc.ListRoutesFn = func(userID int64) ([]models.SavedRoute, error) {
		assert.Equal(t, int64(5), userID)
		return []models.SavedRoute{{ID: 11, RouteText: "Day 1"}}, nil
	}
	list, err := svc.ListPast(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	var deleted int64
	fc.DeleteRouteFn = func(token string, id int64) error {
		deleted = id
		return nil
	}
	require.NoError(t, svc.Delete(ctx, 11))
	assert.Equal(t, int64(11), deleted)

	fc.DeleteRouteFn = func(string, int64) error { return fmt.Errorf("%w: Route not found", client.ErrNotFound) }
	err = svc.Delete(ctx, 12)
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.True(t, auth.IsAuthenticated(), "not found must not log out")
}

func TestRouteService_Export(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	svc := &routeService{now: func() time.Time { return t0 }}

	path, err := svc.Export("Day 1: MoMA")
	require.NoError(t, err)
	assert.Equal(t, "20250501-120000.txt", filepath.Base(path))
	assert.Equal(t, ExportDir, filepath.Base(filepath.Dir(path)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Day 1: MoMA", string(b))

	_, err = svc.Export("")
	assert.ErrorIs(t, err, common.ErrNoRoute)
}
