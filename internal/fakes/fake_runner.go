package fakes

import (
	"context"
	"io"
	"os/exec"
	"strings"
)

// RunnerCall records a single command executed through the FakeRunner.
type RunnerCall struct {
	Argv     []string
	Streamed bool
}

// RunnerResult scripts the outcome of a command keyed by its full argv.
type RunnerResult struct {
	Output string
	Err    error
}

// FakeRunner implements proc.Runner with scripted results so lifecycle code
// can be exercised without any external engine present.
type FakeRunner struct {
	Calls           []RunnerCall
	Results         map[string]RunnerResult
	MissingBinaries []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: map[string]RunnerResult{},
	}
}

// ScriptResult registers the outcome returned when the exact argv is run.
func (f *FakeRunner) ScriptResult(argv []string, output string, err error) {
	f.Results[strings.Join(argv, " ")] = RunnerResult{Output: output, Err: err}
}

func (f *FakeRunner) Output(_ context.Context, argv ...string) (string, error) {
	f.Calls = append(f.Calls, RunnerCall{Argv: argv})
	res, ok := f.Results[strings.Join(argv, " ")]
	if !ok {
		return "", nil
	}
	return res.Output, res.Err
}

func (f *FakeRunner) Stream(_ context.Context, out, _ io.Writer, argv ...string) error {
	f.Calls = append(f.Calls, RunnerCall{Argv: argv, Streamed: true})
	res, ok := f.Results[strings.Join(argv, " ")]
	if !ok {
		return nil
	}
	if res.Output != "" {
		_, _ = out.Write([]byte(res.Output))
	}
	return res.Err
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	for _, missing := range f.MissingBinaries {
		if name == missing {
			return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
		}
	}
	return "/usr/bin/" + name, nil
}

// CalledWith reports whether the exact argv was executed.
func (f *FakeRunner) CalledWith(argv ...string) bool {
	want := strings.Join(argv, " ")
	for _, call := range f.Calls {
		if strings.Join(call.Argv, " ") == want {
			return true
		}
	}
	return false
}

// CallsMatching returns every recorded argv starting with the given prefix.
func (f *FakeRunner) CallsMatching(prefix ...string) [][]string {
	var matched [][]string
	for _, call := range f.Calls {
		if len(call.Argv) < len(prefix) {
			continue
		}
		match := true
		for i, p := range prefix {
			if call.Argv[i] != p {
				match = false
				break
			}
		}
		if match {
			matched = append(matched, call.Argv)
		}
	}
	return matched
}
