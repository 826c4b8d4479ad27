package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/forms"
	"github.com/dmitrijs2005/guidipper/internal/client/services"
	"github.com/dmitrijs2005/guidipper/internal/common"
	"github.com/dmitrijs2005/guidipper/internal/filex"
)

// report logs err and tells the user about it. When the session is gone the
// user is sent to the login page. err is returned unchanged.
func (a *App) report(ctx context.Context, what string, err error) error {
	if err == nil {
		return nil
	}
	a.log.Error(ctx, what+" failed", "page", string(a.page), "error", err)

	switch {
	case errors.Is(err, common.ErrSessionExpired), errors.Is(err, common.ErrNotAuthenticated):
		a.println(err.Error())
		a.page = PageLogin
		a.println("Please log in to continue.")
	case errors.Is(err, client.ErrUnavailable):
		a.println("The server is unreachable. Please try again later.")
	default:
		a.println(userMessage(what, err))
	}
	return err
}

// userMessage picks the text shown for a failed action. Validation errors
// and API messages are shown as they are.
func userMessage(what string, err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if isValidation(err) {
		return err.Error()
	}
	return "Failed to " + what + ". Please try again."
}

var validationErrors = []error{
	forms.ErrEmailRequired,
	forms.ErrPasswordRequired,
	forms.ErrPasswordTooShort,
	forms.ErrPasswordMismatch,
	forms.ErrInvalidTime,
	forms.ErrInvalidTimeRange,
	forms.ErrInvalidCommute,
	forms.ErrUnknownTransport,
	forms.ErrUsernameRequired,
	services.ErrEmptyMessage,
	services.ErrInvalidBookmarks,
	common.ErrNoRoute,
	common.ErrNoPendingDiff,
	filex.ErrEmpty,
	fs.ErrNotExist,
}

func isValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
