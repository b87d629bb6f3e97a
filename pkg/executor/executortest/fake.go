// Package executortest provides a scriptable executor.Executor for tests.
package executortest

import (
	"context"
	"sync"
)

// Call records one command invocation.
type Call struct {
	Name string
	Args []string
}

// HandlerFunc produces the result of a command.
type HandlerFunc func(ctx context.Context, name string, args []string) (stdout, stderr string, err error)

// Fake is an executor.Executor that records calls and delegates to Handler.
type Fake struct {
	Handler HandlerFunc

	mu    sync.Mutex
	calls []Call
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	stdout, _, err := f.ExecuteCombined(ctx, name, args...)
	return stdout, err
}

func (f *Fake) ExecuteCombined(ctx context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.Handler == nil {
		return "", "", nil
	}
	return f.Handler(ctx, name, args)
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// ArgAfter returns the argument following flag, or "" if flag is absent.
func ArgAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
