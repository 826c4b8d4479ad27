package cli

import (
	"context"
	"strings"
)

// Page is a client-side route.
type Page string

const (
	PageHome        Page = "/"
	PageLogin       Page = "/login"
	PageSignup      Page = "/signup"
	PageUpload      Page = "/upload"
	PagePreferences Page = "/preferences"
	PageResult      Page = "/result"
	PageProfile     Page = "/profile"
)

var pages = []Page{PageHome, PageLogin, PageSignup, PageUpload, PagePreferences, PageResult, PageProfile}

// Protected reports whether the page needs a valid session.
func (p Page) Protected() bool {
	switch p {
	case PageUpload, PagePreferences, PageResult, PageProfile:
		return true
	}
	return false
}

// ParsePage accepts a page path with or without the leading slash.
func ParsePage(s string) (Page, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	for _, p := range pages {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// navigate moves to p and reports whether it got there. A protected page
// without a valid session leads to the login page instead.
func (a *App) navigate(ctx context.Context, p Page) bool {
	if p.Protected() {
		if err := a.auth.EnsureValid(ctx); err != nil {
			a.log.Info(ctx, "redirect to login", "from", string(p), "reason", err)
			a.println(err.Error())
			a.println("Please log in to continue.")
			a.page = PageLogin
			return false
		}
	}
	a.page = p
	return true
}

// Go handles "go <page>": it navigates and shows the page.
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: go <page>, one of / /login /signup /upload /preferences /result /profile")
		return nil
	}
	p, ok := ParsePage(args[0])
	if !ok {
		a.println("Unknown page:", args[0])
		return nil
	}

	switch p {
	case PageHome:
		return a.Home(ctx)
	case PageLogin:
		return a.Login(ctx)
	case PageSignup:
		return a.Signup(ctx)
	case PageUpload:
		return a.Upload(ctx)
	case PagePreferences:
		return a.Preferences(ctx)
	case PageResult:
		return a.Result(ctx)
	case PageProfile:
		return a.Profile(ctx)
	}
	return nil
}

// Home shows the landing page.
func (a *App) Home(ctx context.Context) error {
	a.navigate(ctx, PageHome)
	a.println("Welcome to GuiDipper: turn your saved places into a day plan.")
	if a.isLoggedIn() {
		a.println("Next: 'upload' your bookmarks or set your 'preferences'.")
	} else {
		a.println("Start with 'signup' or 'login'.")
	}
	return nil
}
