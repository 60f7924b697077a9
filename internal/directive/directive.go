// Package directive reads and writes the marker comment that tells the
// CLI which top-level functions in an input file are eligible for
// optimization: a line of the form
//
//	// EMSCRIPTEN_GENERATED_FUNCTIONS: ["_foo","_bar"]
//
// This is the optimizer's entire "configuration" surface (§6) — there is
// no config file, no environment variable, no flag that changes which
// functions get touched, only this one marker line.
package directive

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Marker is the fixed prefix that identifies a generated-functions line.
const Marker = "// EMSCRIPTEN_GENERATED_FUNCTIONS:"

// Set is the parsed marker line's name list, as a membership test.
type Set map[string]bool

// NewSet builds a Set from a name list.
func NewSet(names []string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Directive is a located, parsed marker line.
type Directive struct {
	Names []string
	Line  int // zero-based line index within the source it was found in
}

// Find scans src line by line for the marker and parses its payload. ok
// is false (with a nil error) if no marker line is present at all — a
// file with no marker simply has nothing to optimize, which is not an
// error. A marker line that is present but whose payload fails to parse
// as a JSON array of strings is a fatal input-shape error (§7).
func Find(src string) (dir *Directive, ok bool, err error) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), Marker) {
			continue
		}
		names, err := parsePayload(line)
		if err != nil {
			return nil, false, fmt.Errorf("directive: line %d: %w", i+1, err)
		}
		return &Directive{Names: names, Line: i}, true, nil
	}
	return nil, false, nil
}

func parsePayload(line string) ([]string, error) {
	payload := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), Marker))
	var names []string
	if err := json.Unmarshal([]byte(payload), &names); err != nil {
		return nil, fmt.Errorf("malformed marker payload %q: %w", payload, err)
	}
	return names, nil
}

// Format renders a marker line for the given name list, matching the
// shape Find parses. The CLI uses this to re-emit the marker after
// optimizing, using the original (unfiltered) name list per §9's note
// that exactly one marker line, containing the original generated-
// function list, must be emitted.
func Format(names []string) (string, error) {
	payload, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("directive: encoding marker payload: %w", err)
	}
	return Marker + " " + string(payload), nil
}
