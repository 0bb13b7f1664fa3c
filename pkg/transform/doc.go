// Package transform rewrites classified links.
//
// Every operation computes the new target first and compares it with the
// current one. An equal value is reported as unchanged and nothing is
// touched. Otherwise the old link is removed and a new one created, unless
// the engine is in dry-run mode. Per-link failures come back as failed
// results and never abort a run.
package transform
