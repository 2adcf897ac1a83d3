// Package stamperrors provides error definitions for build metadata operations.
//
// This package defines standardized error types to ensure consistent error
// reporting and wrapping throughout the codebase.
package stamperrors
