// Package engine runs one inventory sync: supplier feed in, corrective
// marketplace quantity updates out.
//
// A run is strictly sequential:
//
//  1. Download and normalize the supplier feed (core/feed).
//  2. Fetch every active marketplace listing (core/trading).
//  3. Diff listing quantities against supplier availability.
//  4. Apply the corrections in capped batches, isolating failures per
//     batch.
//
// # No Errors Cross The Boundary
//
// Run always returns a Result, never an error. A failure in the feed or
// listing stage ends the run with Status "failed" and a machine-readable
// ErrorKind plus human-readable message; batch update failures only
// inflate the ItemsFailed counter. The engine holds no state across
// runs; persisting the Result is the caller's business.
//
// # Concurrency
//
// A Spec is a per-call value. Concurrent Run invocations with separate
// specs (e.g. different accounts) share nothing and need no coordination.
// Repeated runs are safe against the remote side: updates set absolute
// quantities, not deltas.
//
// # Usage
//
//	result := engine.Run(ctx, engine.Spec{
//	    FeedURL:     feedURL,
//	    FeedType:    feed.TypeAzureGreen,
//	    Credentials: creds,
//	    Logger:      logger,
//	})
package engine
