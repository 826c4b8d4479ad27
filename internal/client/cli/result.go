package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/guidipper/internal/common"
)

// Result shows the current route, the chat about it and any proposal
// waiting for approval.
func (a *App) Result(ctx context.Context) error {
	if !a.navigate(ctx, PageResult) {
		return nil
	}
	if a.chat.RouteText() == "" {
		a.println("No route yet. Set your 'preferences' first.")
		return nil
	}

	if a.chat.Session() != nil {
		err := a.withLoading(ctx, "Loading messages", func() error {
			return a.chat.Load(ctx)
		})
		if err != nil {
			return a.report(ctx, "load messages", err)
		}
	}

	a.showRoute()
	a.showMessages()
	a.showPending()
	return nil
}

func (a *App) showRoute() {
	a.println("=== Your Personalized Itinerary ===")
	a.println(a.chat.RouteText())
	a.println("===================================")
	a.println("Commands: chat <text>, save, export, preferences")
}

func (a *App) showMessages() {
	for _, m := range a.chat.Messages() {
		a.printf("[%s] %s\n", m.Role, m.Content)
	}
}

func (a *App) showPending() {
	p := a.chat.Pending()
	if p == nil {
		return
	}
	a.println("--- Proposed changes ---")
	if p.ChatMessage != "" {
		a.println(p.ChatMessage)
	}
	a.println(p.DiffContent)
	a.println("------------------------")
	a.println("Type 'approve' to apply or 'reject' to discard.")
}

// Chat sends a message to the assistant about the current route. Without
// args the message is read as multiple lines.
func (a *App) Chat(ctx context.Context, args []string) error {
	if !a.navigate(ctx, PageResult) {
		return nil
	}
	if a.chat.RouteText() == "" {
		return a.report(ctx, "send message", common.ErrNoRoute)
	}

	text := strings.Join(args, " ")
	if text == "" {
		var err error
		text, err = getMultiline(a.reader, "Ask a question or request a change", a.out)
		if err != nil {
			return err
		}
	}

	err := a.withLoading(ctx, "Waiting for the assistant", func() error {
		reply, err := a.chat.Send(ctx, text)
		if err == nil {
			a.printf("[%s] %s\n", reply.Role, reply.Content)
		}
		return err
	})
	if err != nil {
		return a.report(ctx, "send message", err)
	}

	a.showPending()
	return nil
}

// Approve applies the pending proposal and shows the updated route.
func (a *App) Approve(ctx context.Context) error {
	if !a.navigate(ctx, PageResult) {
		return nil
	}
	err := a.withLoading(ctx, "Applying changes", func() error {
		resp, err := a.chat.Approve(ctx)
		if err == nil && resp.Message != "" {
			a.println(resp.Message)
		}
		return err
	})
	if err != nil {
		return a.report(ctx, "apply changes", err)
	}
	a.showRoute()
	return nil
}

// Reject discards the pending proposal. The route is left as it is.
func (a *App) Reject(ctx context.Context) error {
	if !a.navigate(ctx, PageResult) {
		return nil
	}
	if a.chat.Pending() == nil {
		return a.report(ctx, "discard changes", common.ErrNoPendingDiff)
	}
	a.chat.Reject()
	a.println("Changes discarded.")
	return nil
}

// Save stores the current route on the backend.
func (a *App) Save(ctx context.Context) error {
	if !a.navigate(ctx, PageResult) {
		return nil
	}
	err := a.withLoading(ctx, "Saving route", func() error {
		saved, err := a.routes.Save(ctx, a.chat.RouteText())
		if err == nil && saved != nil && saved.ID > 0 {
			a.chat.SetRouteID(saved.ID)
		}
		return err
	})
	if err != nil {
		return a.report(ctx, "save route", err)
	}
	a.println("Route saved successfully!")
	return nil
}

// Export writes the current route to a local text file.
func (a *App) Export(ctx context.Context) error {
	if !a.navigate(ctx, PageResult) {
		return nil
	}
	path, err := a.routes.Export(a.chat.RouteText())
	if err != nil {
		return a.report(ctx, "export route", err)
	}
	a.println("Route exported to", path)
	return nil
}
