package shell

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExternalForeground(t *testing.T) {
	s, out, _ := newTestShell(afero.NewOsFs())

	s.Dispatch(Parse("echo hi", s.pid, false))

	assert.Equal(t, "hi\n", out.String())
	assert.Equal(t, Status{Code: 0}, s.lastStatus)
	assert.Equal(t, 0, s.jobs.Len())
}

func TestRunExternalCapturesExitCode(t *testing.T) {
	s, _, _ := newTestShell(afero.NewOsFs())

	s.RunExternal(&Command{Args: []string{"sh", "-c", "exit 3"}})

	assert.Equal(t, Status{Code: 3}, s.lastStatus)
}

func TestRunExternalSignalDeath(t *testing.T) {
	s, out, _ := newTestShell(afero.NewOsFs())

	s.RunExternal(&Command{Args: []string{"sh", "-c", "kill -TERM $$"}})

	assert.True(t, s.lastStatus.Signaled)
	assert.Equal(t, syscall.SIGTERM, s.lastStatus.Signal)
	assert.Contains(t, out.String(), "terminated by signal 15")
}

func TestRunExternalNotFound(t *testing.T) {
	s, out, _ := newTestShell(afero.NewOsFs())

	s.Dispatch(Parse("smallsh-no-such-program", s.pid, false))

	assert.Contains(t, out.String(), "smallsh-no-such-program: no such file or directory")
	assert.Equal(t, Status{Code: 1}, s.lastStatus)
	assert.Equal(t, 0, s.jobs.Len())
}

func TestRunExternalRedirectOutput(t *testing.T) {
	s, _, _ := newTestShell(afero.NewOsFs())
	outPath := filepath.Join(t.TempDir(), "out.txt")

	s.Dispatch(Parse(fmt.Sprintf("echo hi > %s", outPath), s.pid, false))

	assert.Equal(t, Status{Code: 0}, s.lastStatus)
	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(contents))
}

func TestRunExternalRedirectInput(t *testing.T) {
	s, out, _ := newTestShell(afero.NewOsFs())
	inPath := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("abc\n"), 0644))

	s.Dispatch(Parse(fmt.Sprintf("wc -c < %s", inPath), s.pid, false))

	assert.Equal(t, Status{Code: 0}, s.lastStatus)
	assert.Equal(t, "4", strings.TrimSpace(out.String()))
}

func TestRunExternalRedirectInputMissing(t *testing.T) {
	s, _, errOut := newTestShell(afero.NewOsFs())
	inPath := filepath.Join(t.TempDir(), "missing.txt")

	s.Dispatch(Parse(fmt.Sprintf("cat < %s", inPath), s.pid, false))

	assert.Contains(t, errOut.String(), fmt.Sprintf("cannot open %s for input", inPath))
	assert.Equal(t, Status{Code: 1}, s.lastStatus)
	assert.Equal(t, 0, s.jobs.Len())
}

func TestRunExternalBackground(t *testing.T) {
	s, out, _ := newTestShell(afero.NewOsFs())

	start := time.Now()
	s.Dispatch(Parse("sleep 0.2 &", s.pid, false))

	// The launch must return without waiting for the child.
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Contains(t, out.String(), "background pid is ")
	assert.Equal(t, 1, s.jobs.Len())

	deadline := time.Now().Add(5 * time.Second)
	for s.jobs.Len() > 0 && time.Now().Before(deadline) {
		s.Reap()
		time.Sleep(10 * time.Millisecond)
	}

	assert.Equal(t, 0, s.jobs.Len())
	assert.Contains(t, out.String(), "is done: exit value 0")
}

func TestExitTerminatesBackgroundJobs(t *testing.T) {
	s, out, _ := newTestShell(afero.NewOsFs())

	s.Dispatch(Parse("sleep 30 &", s.pid, false))
	require.Equal(t, 1, s.jobs.Len())

	start := time.Now()
	Exit(s, []string{"exit"})

	assert.True(t, s.exiting)
	assert.Equal(t, 0, s.jobs.Len())
	assert.Less(t, time.Since(start), 10*time.Second)
	// Drained jobs are never reported after exit.
	assert.NotContains(t, out.String(), "is done:")
}

func TestWireRedirectionBackgroundDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(filepath.Dir(os.DevNull), 0755))
	require.NoError(t, afero.WriteFile(fs, os.DevNull, nil, 0666))

	s, _, _ := newTestShell(fs)
	proc := exec.Command("true")

	closer, err := s.wireRedirection(&Command{Args: []string{"true"}, Background: true}, proc)
	require.NoError(t, err)
	defer closer.Close()

	// Unredirected background streams must not touch the terminal.
	assert.NotNil(t, proc.Stdin)
	assert.NotEqual(t, os.Stdin, proc.Stdin)
	assert.NotNil(t, proc.Stdout)
	assert.NotEqual(t, s.stdout, proc.Stdout)
}

func TestWireRedirectionForegroundDefaults(t *testing.T) {
	s, _, _ := newTestShell(afero.NewMemMapFs())
	proc := exec.Command("true")

	closer, err := s.wireRedirection(&Command{Args: []string{"true"}}, proc)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, os.Stdin, proc.Stdin)
	assert.Equal(t, s.stdout, proc.Stdout)
	assert.Equal(t, s.stderr, proc.Stderr)
}
