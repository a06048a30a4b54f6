package shell

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/marczalik/smallsh/core/config"
	"github.com/spf13/afero"
)

const EnvHome = "HOME"

// Shell is an interactive command interpreter: it reads lines, dispatches
// builtins in-process, and runs everything else as child processes with
// optional redirection and background execution.
type Shell struct {
	Config   *config.Configuration
	Readline *readline.Instance

	fs      afero.Fs
	pid     int
	jobs    *JobTable
	signals *SignalBridge
	reaped  chan WaitResult
	stdout  io.Writer
	stderr  io.Writer
	debug   *log.Logger

	lastStatus Status
	exiting    bool
	toClose    listCloser
}

func NewShell(configuration *config.Configuration) (*Shell, error) {
	rl, err := readline.New(configuration.Prompt)
	if err != nil {
		return nil, err
	}

	shell := &Shell{
		Config:   configuration,
		Readline: rl,
		fs:       afero.NewOsFs(),
		pid:      os.Getpid(),
		jobs:     NewJobTable(),
		signals:  &SignalBridge{},
		reaped:   make(chan WaitResult, 16),
		stdout:   rl,
		stderr:   os.Stderr,
		debug:    log.New(io.Discard, "", 0),
	}
	shell.toClose = append(shell.toClose, rl)

	if configuration.LogDebug {
		logFd, err := configuration.OpenAppLog()
		if err != nil {
			rl.Close()
			return nil, err
		}
		shell.toClose = append(shell.toClose, logFd)
		shell.debug = log.New(logFd, "", log.LstdFlags)
	}

	return shell, nil
}

// Run is the main loop: print any deferred mode notice, prompt, read a
// line, parse it under the current foreground-only mode, dispatch it, then
// collect finished background children.
func (s *Shell) Run() error {
	s.installSignalHandlers()

	for !s.exiting {
		if notice, ok := s.signals.TakeNotice(); ok {
			fmt.Fprintf(s.stdout, "\n%s\n", notice)
		}

		s.Readline.SetPrompt(s.Config.Prompt)
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			// Input closed: behave like the exit builtin so no
			// background child is orphaned.
			s.exitShell()
			return nil

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			return err
		}

		s.Dispatch(Parse(line, s.pid, s.signals.ForegroundOnly()))
		s.Reap()
	}

	return nil
}

// Dispatch routes a parsed command to a builtin or an external child.
// Blank lines and comments are no-ops.
func (s *Shell) Dispatch(cmd *Command) {
	if cmd.Empty() || cmd.Comment() {
		return
	}

	if builtin, ok := AllBuiltins[cmd.Args[0]]; ok {
		s.debug.Printf("builtin: %s", cmd.Args[0])
		builtin.Main(s, cmd.Args)
		return
	}

	s.RunExternal(cmd)
}

// Reap collects background children that terminated since the last command,
// reporting each one. It never blocks: results arrive on a buffered channel
// fed by the per-job watcher goroutines.
func (s *Shell) Reap() {
	for {
		select {
		case res := <-s.reaped:
			s.jobs.Remove(res.PID)
			fmt.Fprintf(s.stdout, "background pid %d is done: %s\n", res.PID, res.Status)
		default:
			return
		}
	}
}

func (s *Shell) Close() error {
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
