package stamperrors

import "errors"

var (
	// ErrNoBuildInfo indicates an artifact carries no embedded Go build information.
	ErrNoBuildInfo = errors.New("no build info")

	// ErrUnsupportedArchive indicates an archive format that cannot be inspected.
	ErrUnsupportedArchive = errors.New("unsupported archive")

	// ErrEmptyArchive indicates an archive containing no inspectable binaries.
	ErrEmptyArchive = errors.New("empty archive")

	// ErrFetch indicates an error occurred while fetching a remote artifact.
	ErrFetch = errors.New("fetch artifact")

	// ErrInvalidFormat indicates an unexpected or invalid output format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidPolicy indicates a verification policy that cannot be evaluated.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrVerification indicates an artifact failed one or more policy checks.
	ErrVerification = errors.New("verification failed")
)
