package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid dataset")

// Problem is one validation failure at a JSON-pointer-like location.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// ValidationError reports every problem found in a dataset.
type ValidationError struct {
	Source   string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid dataset")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	if len(e.Problems) == 1 {
		b.WriteString(": ")
		b.WriteString(e.Problems[0].String())
		return b.String()
	}
	fmt.Fprintf(&b, ": %d problems", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	return b.String()
}

// Unwrap lets callers match with errors.Is(err, ErrInvalid).
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks the invariants the loader relies on. Datasets built in
// code go through the same checks as decoded ones.
func (d *Dataset) Validate() error {
	var problems []Problem
	add := func(path, format string, args ...any) {
		problems = append(problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if d.Metadata.Suite == "" {
		add("/metadata/suite", "suite name is required")
	}
	if d.Metadata.Grader.Kind == "" {
		add("/metadata/grader/kind", "grader kind is required")
	}
	if d.Metadata.Grader.Concurrency < 1 {
		add("/metadata/grader/concurrency", "concurrency must be at least 1, got %d", d.Metadata.Grader.Concurrency)
	}
	if d.Metadata.Dataset.Name == "" {
		add("/metadata/dataset/name", "dataset name is required")
	}
	if d.Metadata.Dataset.Split == "" {
		add("/metadata/dataset/split", "dataset split is required")
	}

	seen := make(map[string]bool, len(d.Models))
	for _, m := range d.Models {
		base := "/models/" + m.Name
		if m.Name == "" {
			add("/models", "model name is required")
		}
		if seen[m.Name] {
			add(base, "duplicate model name")
		}
		seen[m.Name] = true

		if m.Config.Kind == "" {
			add(base+"/config/kind", "model kind is required")
		}
		for _, c := range Categories {
			checkFraction(m.Scores.Get(c), base+"/scores/"+string(c), add)
		}

		for i, r := range m.Results {
			path := fmt.Sprintf("%s/results/%d", base, i)
			switch v := r.(type) {
			case KnowledgeResult:
				if v.ID == "" {
					add(path+"/test_id", "test id is required")
				}
				checkFraction(v.Score, path+"/score", add)
			case ExecutionResult:
				if v.ID == "" {
					add(path+"/test_id", "test id is required")
				}
				checkFraction(v.Correctness, path+"/correctness", add)
			case nil:
				add(path, "missing result")
			default:
				add(path, "unsupported result variant %T", r)
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkFraction(v float64, path string, add func(string, string, ...any)) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		add(path, "score %v is outside [0, 1]", v)
	}
}
