package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
)

// Error is a user-facing failure with a stable message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) error     { return &Error{Kind: KindValidation, Msg: msg} }
func Authentication(msg string) error { return &Error{Kind: KindAuthentication, Msg: msg} }
func Authorization(msg string) error  { return &Error{Kind: KindAuthorization, Msg: msg} }

// Sentinel errors.
var (
	// ErrNotFound is returned by repositories on a missing document.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is the normalized form of a Mongo duplicate-key (11000)
	// write error.
	ErrDuplicateKey = errors.New("duplicate key")
)

// StatusOf maps an error to an HTTP status. Validation and both auth kinds
// come back as 403, matching the wire contract the client already speaks.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return fiber.StatusForbidden
	}
	if errors.Is(err, ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
