// File: internal/services/analysis/errors.go
package analysis

import "errors"

var (
	// ErrNoAccess means the user's plan does not permit an analysis right now.
	ErrNoAccess = errors.New("no analyses remaining on current plan")
	// ErrUnsupportedImage means the input could not be normalized into an
	// accepted data URL.
	ErrUnsupportedImage = errors.New("unsupported image input")
)
