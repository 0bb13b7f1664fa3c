// Package types defines the core types shared by the slinky engine:
// the discovered LinkEntry, the per-entry Result returned by every
// operation, and the FS interface all filesystem access goes through.
package types
