package importerror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "parse requires a store id", (&MissingStoreError{Operation: "parse"}).Error())

	snap := &SnapshotError{StoreID: "store-1", Err: errors.New("timeout")}
	assert.Contains(t, snap.Error(), "store-1")
	assert.Contains(t, snap.Error(), "timeout")

	mut := &MutationError{Operation: "create product", Name: "Coke", Err: errors.New("boom")}
	assert.Contains(t, mut.Error(), "create product")
	assert.Contains(t, mut.Error(), "Coke")

	state := &SessionStateError{Operation: "apply", State: "PARSED"}
	assert.Contains(t, state.Error(), "apply")
	assert.Contains(t, state.Error(), "PARSED")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	assert.ErrorIs(t, &SnapshotError{Err: cause}, cause)
	assert.ErrorIs(t, &MutationError{Err: cause}, cause)
}
