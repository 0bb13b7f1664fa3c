// Package filesystem provides filesystem implementations for slinky.
//
// This package contains the OS implementation of the types.FS interface
// and helpers for inode identity and cross-device error detection.
package filesystem
