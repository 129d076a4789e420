package domain

import "errors"

var (
	// ErrSessionExpired is raised when the upstream backend answers 401 to any
	// authenticated call. The session is torn down; there is no silent retry.
	ErrSessionExpired = errors.New("session expired")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
)
