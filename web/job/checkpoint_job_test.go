package job

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type panickingCheckpointer struct{}

func (panickingCheckpointer) Checkpoint() error {
	panic("sqlite: database disk image is malformed")
}

type fakeCheckpointer struct {
	calls int
	err   error
}

func (f *fakeCheckpointer) Checkpoint() error {
	f.calls++
	return f.err
}

func TestCheckpointJob(t *testing.T) {
	ok := &fakeCheckpointer{}
	NewCheckpointJob(ok).Run()
	assert.Equal(t, 1, ok.calls)

	failing := &fakeCheckpointer{err: errors.New("database is locked")}
	assert.NotPanics(t, NewCheckpointJob(failing).Run)
	assert.Equal(t, 1, failing.calls)
}

func TestCheckpointJobRecoversPanic(t *testing.T) {
	assert.NotPanics(t, NewCheckpointJob(panickingCheckpointer{}).Run)
}
