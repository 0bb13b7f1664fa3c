// Package paths implements the path algebra used by slinky.
//
// Normalize reduces a path lexically (the "tidy" operation) and Relativize
// computes the shortest ".."-based path between two absolute locations.
// Neither function queries the filesystem; callers resolve symlinks first
// when a canonical answer is needed, using Canonical, CanonicalParent or
// CanonicalNearest.
package paths
