// Package version provides build identity information for the application.
//
// This package defines version values and utilities for accessing build
// metadata throughout the application. It centralizes version management to
// ensure consistent version reporting across all components.
package version
