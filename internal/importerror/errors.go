// Package importerror defines the typed errors surfaced by the import
// pipeline. Parse-time problems are never errors — they are ItemStatus
// values on the parsed items; the types here cover the genuinely faulting
// paths: snapshot fetches, remote mutations and session misuse.
package importerror

import "fmt"

// MissingStoreError signals that an operation needing a store context was
// invoked without one. This is batch-fatal: a dry run must never proceed
// against an empty catalog by accident.
type MissingStoreError struct {
	Operation string
}

func (e *MissingStoreError) Error() string {
	return fmt.Sprintf("%s requires a store id", e.Operation)
}

// SnapshotError wraps a failed catalog fetch. It fails the whole dry-run
// step rather than silently classifying every item as a create.
type SnapshotError struct {
	StoreID string
	Err     error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("failed to fetch catalog snapshot for store %s: %v", e.StoreID, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// MutationError wraps a failed remote write for one item or category. The
// executor downgrades these to per-item failure records; they only
// propagate when a caller invokes the mutation provider directly.
type MutationError struct {
	Operation string
	Name      string
	Err       error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s failed for %q: %v", e.Operation, e.Name, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// SessionStateError reports an operation invoked in the wrong session
// phase, e.g. applying before a dry run has been computed.
type SessionStateError struct {
	Operation string
	State     string
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("cannot %s in session state %s", e.Operation, e.State)
}
