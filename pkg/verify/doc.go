// Package verify asserts policy over artifact build identity.
//
// A Policy describes what a shipped artifact must look like; verification
// aggregates every violation so a failing artifact reports all of its
// problems at once.
package verify
