package models

import "errors"

var (
	// ErrDuplicateUsername is returned when a sign-up uses an existing user id.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrMissingCoordinates is returned when lat or lon is absent.
	ErrMissingCoordinates = errors.New("missing lat or lon")
	// ErrInvalidCoordinates is returned when lat or lon is not a valid coordinate.
	ErrInvalidCoordinates = errors.New("invalid lat or lon")
	// ErrExternalAPI wraps transport and response-shape failures of the weather API.
	ErrExternalAPI = errors.New("weather service unavailable")
	// ErrQueryFailure wraps every database error.
	ErrQueryFailure = errors.New("query failed")
	// ErrForbidden is returned when the actor does not own the post.
	ErrForbidden = errors.New("you can only change your own posts")
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
)
