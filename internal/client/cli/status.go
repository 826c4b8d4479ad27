package cli

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Status prints the current page, the session and which keys the local
// store holds. Values are never printed: one of them is the bearer token.
func (a *App) Status(ctx context.Context) error {
	a.println("Page:   ", string(a.page))

	if s, ok := a.auth.Session(); ok {
		a.println("User:   ", s.User.DisplayName())
		left := time.Until(s.ExpiresAt).Round(time.Second)
		a.printf("Session: expires %s (in %s)\n", s.ExpiresAt.Local().Format("2006-01-02 15:04:05"), left)
	} else {
		a.println("Session: none")
	}

	stored, err := a.store.List(ctx)
	if err != nil {
		return a.report(ctx, "read local data", err)
	}
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	a.println("Stored: ", orNone(strings.Join(keys, ", ")))
	return nil
}
