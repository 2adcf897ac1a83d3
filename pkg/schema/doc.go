// Package schema generates JSON Schema documents for report types.
//
// Consumers that store or validate identity reports (diagnostics panels,
// crash reporters) can use the emitted schema instead of tracking the Go
// types directly.
package schema
