package common

import "errors"

var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired, please log in again")

	// Result page errors.
	ErrNoRoute       = errors.New("no generated route yet")
	ErrNoPendingDiff = errors.New("no pending changes to review")
)
