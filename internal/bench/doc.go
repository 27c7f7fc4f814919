// Package bench solves batches of random boards in parallel and collects
// per-run search metrics.
package bench
