package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/forms"
	"github.com/dmitrijs2005/guidipper/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Signup asks for an email and a password typed twice, validates them and
// creates the account. The user is then sent to the login page.
func (a *App) Signup(ctx context.Context) error {
	a.navigate(ctx, PageSignup)

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Confirm password: ")
	if err != nil {
		return err
	}

	form := forms.SignupForm{Email: email, Password: password, Confirm: confirm}
	if err := form.Validate(); err != nil {
		return a.report(ctx, "sign up", err)
	}

	err = a.withLoading(ctx, "Creating your account", func() error {
		_, err := a.auth.Signup(ctx, form.Email, form.Password)
		return err
	})
	if err != nil {
		return a.report(ctx, "sign up", err)
	}

	a.println("Account created. Please log in.")
	a.page = PageLogin
	return nil
}

// Login asks for credentials and starts a session. On success the user
// lands on the upload page.
func (a *App) Login(ctx context.Context) error {
	a.navigate(ctx, PageLogin)

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}

	form := forms.LoginForm{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		return a.report(ctx, "log in", err)
	}

	err = a.withLoading(ctx, "Logging in", func() error {
		_, err := a.auth.Login(ctx, form.Email, form.Password)
		return err
	})
	if errors.Is(err, client.ErrUnauthorized) {
		a.log.Warn(ctx, "login rejected", "email", form.Email)
		a.println("Incorrect email or password")
		return err
	}
	if err != nil {
		return a.report(ctx, "log in", err)
	}

	u, _ := a.auth.User()
	a.println("Welcome,", u.DisplayName()+"!")
	a.navigate(ctx, PageUpload)
	a.println("Next: 'upload' your Google Maps bookmarks.")
	return nil
}

// Logout ends the session and returns to the home page. The chat state
// belongs to the session and is dropped too.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.report(ctx, "log out", err)
	}
	a.chat.SetRoute("", nil)
	a.page = PageHome
	a.println("Logged out.")
	return nil
}
