package errs

import (
	"errors"
	"fmt"
)

type Code string

const (
	VersionNotFound   Code = "VERSION_NOT_FOUND"
	ClientJarMissing  Code = "CLIENT_JAR_MISSING"
	UpstreamFetch     Code = "UPSTREAM_FETCH"
	MalformedArchive  Code = "MALFORMED_ARCHIVE"
	MalformedDocument Code = "MALFORMED_DOCUMENT"

	FlagConflict Code = "FLAG_CONFLICT"
)

var messages = map[Code]string{
	VersionNotFound:   "Version not found",
	ClientJarMissing:  "Client JAR not available",
	UpstreamFetch:     "failed to fetch %s",
	MalformedArchive:  "invalid client archive",
	MalformedDocument: "invalid document from %s",
	FlagConflict:      "flags %s and %s cannot be used together",
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	if len(a) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, a...)
}

// Error is a coded failure raised while resolving a version.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so errors.Is(err,
// errs.New(errs.VersionNotFound)) works without sentinel identity.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code Code, a ...any) *Error {
	return &Error{Code: code, Message: Msg(code, a...)}
}

func Wrap(code Code, err error, a ...any) *Error {
	return &Error{Code: code, Message: Msg(code, a...), Err: err}
}

func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// IsNotFound reports whether err should surface as a "not found" response.
func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && (code == VersionNotFound || code == ClientJarMissing)
}
