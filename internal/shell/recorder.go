package shell

import (
	"strings"
	"sync"
)

// Canned is a pre-arranged response for a Recorder.
type Canned struct {
	// Stdout is the raw stdout to return, split into lines by the Recorder.
	Stdout string
	// ExitCode is the exit code to report.
	ExitCode int
}

// Recorder is a Runner test double. It records every invocation and answers
// from a table of canned responses keyed by the joined command line.
// Unmatched commands succeed with empty output, so tests only need to
// configure the calls they assert on.
type Recorder struct {
	mu sync.Mutex

	// Calls lists every invocation as a single joined command line,
	// in order. RunShell calls are recorded with a "sh: " prefix.
	Calls []string

	responses map[string]Canned
	prefixes  []prefixResponse
}

type prefixResponse struct {
	prefix string
	canned Canned
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{responses: make(map[string]Canned)}
}

// Respond registers a canned response for an exact command line,
// e.g. "nmcli radio wifi".
func (r *Recorder) Respond(commandLine string, c Canned) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[commandLine] = c
}

// RespondPrefix registers a canned response for any command line starting
// with the given prefix. Exact matches take precedence.
func (r *Recorder) RespondPrefix(prefix string, c Canned) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefixResponse{prefix: prefix, canned: c})
}

// Run implements Runner.
func (r *Recorder) Run(name string, args ...string) Result {
	line := strings.Join(append([]string{name}, args...), " ")
	return r.record(line)
}

// RunShell implements Runner.
func (r *Recorder) RunShell(line string) Result {
	res := r.record(line)
	r.mu.Lock()
	r.Calls[len(r.Calls)-1] = "sh: " + line
	r.mu.Unlock()
	return res
}

func (r *Recorder) record(line string) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, line)

	c, ok := r.responses[line]
	if !ok {
		for _, p := range r.prefixes {
			if strings.HasPrefix(line, p.prefix) {
				c = p.canned
				ok = true
				break
			}
		}
	}
	if !ok {
		return Result{ExitCode: 0}
	}
	return Result{Lines: splitLines(c.Stdout), ExitCode: c.ExitCode}
}

// CallLines returns a copy of the recorded command lines.
func (r *Recorder) CallLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Calls))
	copy(out, r.Calls)
	return out
}

// Reset clears the recorded calls but keeps the canned responses.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = nil
}
