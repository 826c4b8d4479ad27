// Package forms validates user input before anything is sent to the backend.
// Error texts are shown to the user as they are.
package forms

import "errors"

var (
	ErrEmailRequired    = errors.New("Email is required.")
	ErrPasswordRequired = errors.New("Password is required.")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters long.")
	ErrPasswordMismatch = errors.New("Passwords do not match.")

	ErrInvalidTime      = errors.New("Time must be in HH:MM format.")
	ErrInvalidTimeRange = errors.New("End time must be greater than start time.")
	ErrInvalidCommute   = errors.New("Max commute time must be a non-negative number of minutes.")
	ErrUnknownTransport = errors.New("Unknown transport mode.")

	ErrUsernameRequired = errors.New("Username must not be empty.")
)
