// Package pipeline orchestrates ticket processing.
//
// Each ticket moves through classification, retrieval and answer
// generation as an independent state machine, recorded on a
// core.ProcessingRecord. External capabilities are called with
// per-stage timeouts and transient-only retries; outages degrade the
// record (unknown labels, no evidence, static fallback answer) instead
// of failing it. Only malformed tickets and cancellation fail a record
// terminally. Multiple tickets run concurrently on a worker pool.
package pipeline
