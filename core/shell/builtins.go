package shell

import (
	"fmt"
	"os"
	"syscall"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]Builtin)

type Builtin interface {
	Main(s *Shell, args []string) int
}

type BuiltinFunc func(s *Shell, args []string) int

func (f BuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Cd is the cd shell builtin. With no argument it changes to $HOME.
func Cd(s *Shell, args []string) int {
	dir := os.Getenv(EnvHome)
	if len(args) > 1 {
		dir = args[1]
	}
	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}

// StatusBuiltin reports how the last foreground child terminated. It never
// alters the captured status.
func StatusBuiltin(s *Shell, args []string) int {
	fmt.Fprintln(s.stdout, s.lastStatus)
	return 0
}

// Exit terminates every outstanding background child, waits for each, then
// stops the shell.
func Exit(s *Shell, args []string) int {
	s.exitShell()
	return 0
}

func (s *Shell) exitShell() {
	for _, pid := range s.jobs.Pids() {
		job, ok := s.jobs.Get(pid)
		if !ok {
			continue
		}
		// Children that already died return an error here; their watcher
		// goroutines have a result queued regardless.
		if err := job.Cmd.Process.Signal(syscall.SIGTERM); err != nil {
			s.debug.Printf("terminate pid %d: %v", pid, err)
		}
	}

	// Every tracked child has a watcher goroutine blocked in Wait. Drain
	// silently until all of them have been collected so nothing is orphaned
	// and no job report prints after exit.
	for s.jobs.Len() > 0 {
		res := <-s.reaped
		s.jobs.Remove(res.PID)
	}

	s.exiting = true
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["status"] = BuiltinFunc(StatusBuiltin)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
}
