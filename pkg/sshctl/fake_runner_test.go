package sshctl

import (
	"context"
	"sync"
)

type call struct {
	name string
	args []string
}

type reply struct {
	res Result
	err error
}

// fakeRunner answers Run calls from a queue of replies and records them.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	replies []reply
}

func (f *fakeRunner) queue(res Result, err error) *fakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, reply{res: res, err: err})
	return f
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: args})
	if len(f.replies) == 0 {
		return Result{ExitCode: 255, Stderr: []byte("no reply queued")}, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.res, r.err
}

func (f *fakeRunner) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func ok(stdout, stderr string) Result {
	return Result{Stdout: []byte(stdout), Stderr: []byte(stderr)}
}

func failed(code int, stderr string) Result {
	return Result{ExitCode: code, Stderr: []byte(stderr)}
}
