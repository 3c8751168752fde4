package errors

import "errors"

var (
	// ErrEmptyText rejects requests whose text is blank after trimming.
	ErrEmptyText = errors.New("text content is empty")
	// ErrTextTooLong rejects text over the configured maximum length.
	ErrTextTooLong = errors.New("text exceeds maximum length")
	// ErrTooManySlides rejects input that segments into more slides than allowed.
	ErrTooManySlides = errors.New("too many slides")
	// ErrInvalidConfig is a generic sentinel for out-of-range config values.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrRenderFailed marks a draw/encode failure; the whole carousel is discarded.
	ErrRenderFailed = errors.New("render failed")
)

// IsValidation reports whether err is one of the pre-render input errors,
// as opposed to an internal rendering failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrTooManySlides) ||
		errors.Is(err, ErrInvalidConfig)
}
