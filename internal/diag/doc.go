// Package diag defines the diagnostic model shared by all dictionary
// transformations.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the generate / merge / prune stages (duplicate declarations, tag
//     conflicts, malformed enum values, ...).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration lives in
// internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Subject – the tag number or element name the finding is about.
//   - Message – human oriented text; keep it short and actionable.
//   - Notes – optional secondary messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "first
// defined as ...") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Stages should use a diag.Reporter to decouple emission from storage. When no
// additional metadata is needed, stages may call Reporter.Report(...) directly.
// diag.BagReporter aggregates diagnostics into a Bag, which supports sorting
// and deduplication. Non-fatal findings never abort a run: the bag is carried
// to the end and printed once.
package diag
