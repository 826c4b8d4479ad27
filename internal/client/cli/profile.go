package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/guidipper/internal/client/models"
)

// Profile shows the account details and the saved routes.
func (a *App) Profile(ctx context.Context) error {
	if !a.navigate(ctx, PageProfile) {
		return nil
	}

	var u *models.User
	err := a.withLoading(ctx, "Loading Profile", func() error {
		var err error
		u, err = a.auth.RefreshUser(ctx)
		return err
	})
	if err != nil {
		return a.report(ctx, "load profile", err)
	}

	a.println("=== Your Profile ===")
	a.println("Email:   ", u.Email)
	a.println("Username:", orNone(u.Username))
	if avatar, err := a.profile.AvatarURL(ctx); err != nil {
		a.log.Warn(ctx, "avatar lookup failed", "error", err)
	} else {
		a.println("Avatar:  ", orNone(avatar))
	}

	if err := a.Routes(ctx); err != nil {
		return err
	}
	a.println("Commands: avatar <file>, username <name>, routes, delete <id>, upload")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Routes lists the saved routes of the user.
func (a *App) Routes(ctx context.Context) error {
	if !a.navigate(ctx, PageProfile) {
		return nil
	}

	var routes []models.SavedRoute
	err := a.withLoading(ctx, "Loading routes", func() error {
		var err error
		routes, err = a.routes.ListPast(ctx)
		return err
	})
	if err != nil {
		return a.report(ctx, "load routes", err)
	}

	if len(routes) == 0 {
		a.println("No saved routes yet.")
		return nil
	}
	a.println("Saved routes:")
	for _, r := range routes {
		a.printf("  #%d  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), firstLine(r.RouteText))
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const maxLen = 60
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen]) + "..."
	}
	return s
}

// argOrPrompt returns args joined, or asks for the value when there are none.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Avatar uploads a new profile picture.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if !a.navigate(ctx, PageProfile) {
		return nil
	}
	path, err := a.argOrPrompt(args, "Path to the image file")
	if err != nil {
		return err
	}
	if path == "" {
		a.println("No file selected.")
		return nil
	}

	var url string
	err = a.withLoading(ctx, "Uploading avatar", func() error {
		var err error
		url, err = a.profile.UploadAvatar(ctx, path)
		return err
	})
	if err != nil {
		return a.report(ctx, "update avatar", err)
	}
	a.println("Avatar updated!", url)
	return nil
}

// Username changes the display name. The prompt is prefilled with the
// current one.
func (a *App) Username(ctx context.Context, args []string) error {
	if !a.navigate(ctx, PageProfile) {
		return nil
	}

	name := strings.Join(args, " ")
	if name == "" {
		u, _ := a.auth.User()
		var err error
		if name, err = a.ask("New username", u.Username); err != nil {
			return err
		}
	}

	err := a.withLoading(ctx, "Updating username", func() error {
		var err error
		name, err = a.profile.UpdateUsername(ctx, name)
		return err
	})
	if err != nil {
		return a.report(ctx, "update username", err)
	}
	a.println("Username updated!", name)
	return nil
}

// Delete removes a saved route after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.navigate(ctx, PageProfile) {
		return nil
	}
	raw, err := a.argOrPrompt(args, "Route id to delete")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		a.println("Invalid route id:", raw)
		return nil
	}

	ok, err := GetYesNo(a.reader, fmt.Sprintf("Delete route #%d?", id), false, a.out)
	if err != nil || !ok {
		a.println("Cancelled.")
		return nil
	}

	err = a.withLoading(ctx, "Deleting route", func() error {
		return a.routes.Delete(ctx, id)
	})
	if err != nil {
		return a.report(ctx, "delete route", err)
	}
	a.println("Route deleted.")
	return nil
}
