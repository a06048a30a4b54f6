package shell

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/spf13/afero"
)

// newTestShell builds a shell wired to in-memory buffers instead of a
// terminal.
func newTestShell(fs afero.Fs) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	s := &Shell{
		fs:      fs,
		pid:     os.Getpid(),
		jobs:    NewJobTable(),
		signals: &SignalBridge{},
		reaped:  make(chan WaitResult, 16),
		stdout:  &out,
		stderr:  &errOut,
		debug:   log.New(io.Discard, "", 0),
	}
	return s, &out, &errOut
}
