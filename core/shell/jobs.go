package shell

import (
	"os/exec"
	"sort"
	"sync"
)

// Job tracks one outstanding background child process.
type Job struct {
	PID  int
	Cmd  *exec.Cmd
	Name string
}

// JobTable registers background children from launch until they are reaped.
type JobTable struct {
	mu   sync.Mutex
	jobs map[int]*Job
}

func NewJobTable() *JobTable {
	return &JobTable{jobs: make(map[int]*Job)}
}

func (t *JobTable) Insert(job *Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[job.PID] = job
}

// Remove drops the job for pid. Removing an untracked pid is a no-op.
func (t *JobTable) Remove(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, pid)
}

func (t *JobTable) Get(pid int) (*Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job, ok := t.jobs[pid]
	return job, ok
}

// Pids returns the tracked pids in ascending order.
func (t *JobTable) Pids() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	pids := make([]int, 0, len(t.jobs))
	for pid := range t.jobs {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

func (t *JobTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}
