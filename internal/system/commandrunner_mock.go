package system

import (
	"fmt"
	"strings"
	"sync"
)

// MockCommandRunner is a CommandRunner for tests. Responses are scripted per
// command prefix; every invocation is recorded for assertions.
type MockCommandRunner struct {
	mu        sync.Mutex
	Calls     []string
	responses map[string]mockResponse
}

type mockResponse struct {
	result Result
	err    error
}

// NewMockCommandRunner creates a MockCommandRunner with no scripted failures:
// unmatched commands succeed with an empty Result.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		responses: make(map[string]mockResponse),
	}
}

// Respond scripts a response for any command line starting with prefix.
func (m *MockCommandRunner) Respond(prefix string, result Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prefix] = mockResponse{result: result, err: err}
}

// Fail scripts a non-zero exit with the given stderr for command lines
// starting with prefix.
func (m *MockCommandRunner) Fail(prefix, stderr string) {
	m.Respond(prefix, Result{ExitCode: 1, Stderr: stderr}, fmt.Errorf("exit status 1"))
}

// Run records the call and returns the scripted response, if any.
func (m *MockCommandRunner) Run(name string, args ...string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line := CommandLine(name, args...)
	m.Calls = append(m.Calls, line)

	for prefix, resp := range m.responses {
		if strings.HasPrefix(line, prefix) {
			return resp.result, resp.err
		}
	}

	return Result{}, nil
}

// CallsMatching returns the recorded command lines starting with prefix.
func (m *MockCommandRunner) CallsMatching(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []string
	for _, call := range m.Calls {
		if strings.HasPrefix(call, prefix) {
			matched = append(matched, call)
		}
	}
	return matched
}
