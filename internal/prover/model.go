// internal/prover/model.go
package prover

import (
	"strconv"
	"strings"
)

// Model is the structured view of a mace4 interpretation: the domain size
// plus the relation and function lines of the interpretation block. The raw
// block is kept verbatim since full mace4 output is richer than this parse.
type Model struct {
	DomainSize     int      `json:"domain_size"`
	Relations      []string `json:"relations,omitempty"`
	Functions      []string `json:"functions,omitempty"`
	Interpretation string   `json:"interpretation"`
}

// ParseModel extracts a Model from raw mace4 stdout. It tolerates partial
// output: fields it cannot find are left zero.
func ParseModel(stdout string) *Model {
	m := &Model{}

	for _, line := range strings.Split(stdout, "\n") {
		// The size is the first token after the marker; the line may be a
		// banner padded with '=' runs.
		if _, rest, ok := strings.Cut(line, markerDomainSize); ok {
			fields := strings.Fields(rest)
			if len(fields) == 0 {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimRight(fields[0], ".")); err == nil {
				m.DomainSize = n
			}
		}
	}

	start := strings.Index(stdout, markerModel)
	if start < 0 {
		return m
	}
	end := strings.Index(stdout[start:], "end_of_list")
	var block string
	if end < 0 {
		block = stdout[start:]
	} else {
		block = stdout[start : start+end+len("end_of_list")]
	}
	m.Interpretation = strings.TrimSpace(block)

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, ","))
		switch {
		case strings.HasPrefix(line, "relation("):
			m.Relations = append(m.Relations, line)
		case strings.HasPrefix(line, "function("):
			m.Functions = append(m.Functions, line)
		}
	}

	return m
}
