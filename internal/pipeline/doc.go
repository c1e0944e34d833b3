// Package pipeline drives one restoration run from scan to rewrite.
//
// Albums are processed strictly one at a time: a group is fully resolved,
// aligned and rewritten before the next is considered, and any remote
// lookup or interactive prompt blocks the whole run while in flight.
// Failures are contained at the album-group boundary; a failed file or
// group is reported and the run moves on, with a summary at the end.
package pipeline
