package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfig indicates missing or invalid configuration: absent
	// config keys, an unreadable config file, or a malformed
	// credential file. Fatal at startup.
	ErrConfig = errors.New("configuration error")

	// ErrSheet indicates a spreadsheet service failure: authentication,
	// spreadsheet-not-found, or any other remote API error during
	// initialization or write.
	ErrSheet = errors.New("sheet error")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// IsConfigError reports whether err belongs to the configuration
// error category.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsSheetError reports whether err belongs to the sheet error category.
func IsSheetError(err error) bool {
	return errors.Is(err, ErrSheet)
}
