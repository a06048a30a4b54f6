package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

// Status is the captured termination status of a child process.
type Status struct {
	Code     int
	Signal   syscall.Signal
	Signaled bool
}

func (s Status) String() string {
	if s.Signaled {
		return fmt.Sprintf("terminated by signal %d", s.Signal)
	}
	return fmt.Sprintf("exit value %d", s.Code)
}

// WaitResult is delivered on the reap channel when a background child ends.
type WaitResult struct {
	PID    int
	Status Status
}

// RunExternal launches a non-builtin command as a child process.
//
// Foreground commands block until the child terminates and capture its
// status. Background commands are registered in the job table, announced by
// pid, and collected later by Reap.
func (s *Shell) RunExternal(cmd *Command) {
	proc := exec.Command(cmd.Args[0], cmd.Args[1:]...)

	files, err := s.wireRedirection(cmd, proc)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		if !cmd.Background {
			s.lastStatus = Status{Code: 1}
		}
		return
	}
	defer files.Close()

	if cmd.Background {
		// A separate process group keeps terminal-generated SIGINT away
		// from background children.
		proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}

	if err := proc.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(s.stdout, "%s: no such file or directory\n", cmd.Args[0])
		} else {
			fmt.Fprintf(s.stderr, "%s: %v\n", cmd.Args[0], err)
		}
		if !cmd.Background {
			s.lastStatus = Status{Code: 1}
		}
		return
	}

	job := &Job{PID: proc.Process.Pid, Cmd: proc, Name: cmd.Args[0]}
	s.jobs.Insert(job)
	s.debug.Printf("started pid %d: %s", job.PID, job.Name)

	if cmd.Background {
		fmt.Fprintf(s.stdout, "background pid is %d\n", job.PID)
		go func() {
			if err := proc.Wait(); err != nil {
				s.debug.Printf("wait pid %d: %v", job.PID, err)
			}
			s.reaped <- WaitResult{PID: job.PID, Status: waitStatus(proc)}
		}()
		return
	}

	s.signals.SetWaiting(true)
	if err := proc.Wait(); err != nil {
		s.debug.Printf("wait pid %d: %v", job.PID, err)
	}
	s.signals.SetWaiting(false)
	s.jobs.Remove(job.PID)

	s.lastStatus = waitStatus(proc)
	if s.lastStatus.Signaled {
		fmt.Fprintf(s.stdout, "%s\n", s.lastStatus)
	}
}

// waitStatus converts a Wait result into a Status, distinguishing signal
// deaths from normal exits.
func waitStatus(proc *exec.Cmd) Status {
	state := proc.ProcessState
	if state == nil {
		// Wait failed before the child was collected.
		return Status{Code: 1}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Status{Signal: ws.Signal(), Signaled: true}
	}
	return Status{Code: state.ExitCode()}
}

// wireRedirection connects the child's standard streams per the command.
//
// Output targets are created or truncated with mode 0644, inputs are opened
// read only. Background commands default any unredirected direction to the
// null device so they never share the interactive terminal by accident.
func (s *Shell) wireRedirection(cmd *Command, proc *exec.Cmd) (io.Closer, error) {
	var toClose listCloser

	switch {
	case cmd.RedirectInput:
		fd, err := s.fs.Open(cmd.InputPath)
		if err != nil {
			toClose.Close()
			return nil, fmt.Errorf("cannot open %s for input", cmd.InputPath)
		}
		toClose = append(toClose, fd)
		proc.Stdin = fd
	case cmd.Background:
		fd, err := s.fs.Open(os.DevNull)
		if err != nil {
			toClose.Close()
			return nil, err
		}
		toClose = append(toClose, fd)
		proc.Stdin = fd
	default:
		proc.Stdin = os.Stdin
	}

	switch {
	case cmd.RedirectOutput:
		fd, err := s.fs.OpenFile(cmd.OutputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			toClose.Close()
			return nil, fmt.Errorf("cannot open %s for output", cmd.OutputPath)
		}
		toClose = append(toClose, fd)
		proc.Stdout = fd
	case cmd.Background:
		fd, err := s.fs.OpenFile(os.DevNull, os.O_WRONLY, 0644)
		if err != nil {
			toClose.Close()
			return nil, err
		}
		toClose = append(toClose, fd)
		proc.Stdout = fd
	default:
		proc.Stdout = s.stdout
	}

	proc.Stderr = s.stderr
	return toClose, nil
}
