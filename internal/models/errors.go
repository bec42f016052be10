package models

import "errors"

var (
	// ErrNotFound is the single miss signal surfaced by repositories and
	// the sync resolver. Callers cannot tell a catalog miss from a failed
	// scrape; only the logs distinguish them.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned on signup when the address is registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. Deliberately indistinct between the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
