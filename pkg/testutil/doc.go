// Package testutil provides helpers for slinky tests: builders for real
// temporary trees of files, directories and links, link-aware assertions,
// and FaultFS for injecting errors (cross-device links, failed creates)
// that are hard to produce on a single test filesystem.
package testutil
