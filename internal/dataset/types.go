// Package dataset loads and validates benchmark result datasets.
//
// A dataset is a single static document: suite metadata plus an ordered
// mapping from model name to that model's configuration, aggregate scores,
// and raw per-test results. Once loaded it is never mutated.
package dataset

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the two result variants.
type Kind string

// Result kinds.
const (
	KindKnowledge Kind = "knowledge"
	KindExecution Kind = "execution"
)

// Kinds lists every result kind in display order.
var Kinds = []Kind{KindKnowledge, KindExecution}

// Valid reports whether k names a known result kind.
func (k Kind) Valid() bool {
	return k == KindKnowledge || k == KindExecution
}

// Category names one of the aggregate score categories.
type Category string

// Score categories.
const (
	CategoryOverall     Category = "overall"
	CategoryKnowledge   Category = "knowledge"
	CategoryCorrectness Category = "correctness"
	CategoryQuality     Category = "quality"
)

// Categories lists the score categories in display order.
var Categories = []Category{CategoryOverall, CategoryKnowledge, CategoryCorrectness, CategoryQuality}

// Metadata describes the evaluation suite.
type Metadata struct {
	Suite   string      `json:"suite" yaml:"suite"`
	Grader  Grader      `json:"grader" yaml:"grader"`
	Dataset DatasetInfo `json:"dataset" yaml:"dataset"`
}

// Grader describes the harness that produced the results.
type Grader struct {
	Kind        string `json:"kind" yaml:"kind"`
	Concurrency int    `json:"concurrency" yaml:"concurrency"`
}

// DatasetInfo names the evaluation data the suite ran against.
type DatasetInfo struct {
	Name  string `json:"name" yaml:"name"`
	Split string `json:"split" yaml:"split"`
}

// ModelConfig describes the subject system under evaluation.
type ModelConfig struct {
	Kind        string  `json:"kind" yaml:"kind"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// Scores holds the aggregate fractional scores of a model.
type Scores struct {
	Overall     float64 `json:"overall" yaml:"overall"`
	Knowledge   float64 `json:"knowledge" yaml:"knowledge"`
	Correctness float64 `json:"correctness" yaml:"correctness"`
	Quality     float64 `json:"quality" yaml:"quality"`
}

// Get returns the score for category c.
func (s Scores) Get(c Category) float64 {
	switch c {
	case CategoryOverall:
		return s.Overall
	case CategoryKnowledge:
		return s.Knowledge
	case CategoryCorrectness:
		return s.Correctness
	case CategoryQuality:
		return s.Quality
	default:
		panic(fmt.Sprintf("dataset: unknown score category %q", c))
	}
}

// Result is one raw test outcome. It is implemented only by
// KnowledgeResult and ExecutionResult; consumers switch over both.
type Result interface {
	TestID() string
	Kind() Kind
	isResult()
}

// KnowledgeResult is a binary-graded test outcome.
type KnowledgeResult struct {
	ID    string  `json:"test_id" yaml:"test_id"`
	Score float64 `json:"score" yaml:"score"`
}

// TestID implements Result.
func (r KnowledgeResult) TestID() string { return r.ID }

// Kind implements Result.
func (KnowledgeResult) Kind() Kind { return KindKnowledge }

func (KnowledgeResult) isResult() {}

// MarshalJSON adds the type discriminant.
func (r KnowledgeResult) MarshalJSON() ([]byte, error) {
	type plain KnowledgeResult
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindKnowledge, plain(r)})
}

// ExecutionResult is a test outcome scored as a continuous correctness fraction.
type ExecutionResult struct {
	ID          string  `json:"test_id" yaml:"test_id"`
	Correctness float64 `json:"correctness" yaml:"correctness"`
}

// TestID implements Result.
func (r ExecutionResult) TestID() string { return r.ID }

// Kind implements Result.
func (ExecutionResult) Kind() Kind { return KindExecution }

func (ExecutionResult) isResult() {}

// MarshalJSON adds the type discriminant.
func (r ExecutionResult) MarshalJSON() ([]byte, error) {
	type plain ExecutionResult
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindExecution, plain(r)})
}

// ModelEntry is everything the dataset records about one model.
type ModelEntry struct {
	Name    string      `json:"name" yaml:"-"`
	Config  ModelConfig `json:"config" yaml:"config"`
	Scores  Scores      `json:"scores" yaml:"scores"`
	Results Results     `json:"results" yaml:"results"`
}

// CountByKind returns how many knowledge and execution results the model has.
func (m ModelEntry) CountByKind() (knowledge, execution int) {
	for _, r := range m.Results {
		switch r.(type) {
		case KnowledgeResult:
			knowledge++
		case ExecutionResult:
			execution++
		}
	}
	return knowledge, execution
}

// Dataset is a loaded, validated benchmark document. Models keep the order
// in which they appeared in the source document.
type Dataset struct {
	Metadata Metadata     `json:"metadata"`
	Models   []ModelEntry `json:"models"`
}

// ModelNames returns the model names in display order.
func (d *Dataset) ModelNames() []string {
	names := make([]string, len(d.Models))
	for i, m := range d.Models {
		names[i] = m.Name
	}
	return names
}

// Model looks up a model by name.
func (d *Dataset) Model(name string) (ModelEntry, bool) {
	for _, m := range d.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelEntry{}, false
}

// HasModel reports whether the dataset contains a model called name.
func (d *Dataset) HasModel(name string) bool {
	_, ok := d.Model(name)
	return ok
}

// ResultCount returns the total number of results across all models.
func (d *Dataset) ResultCount() int {
	n := 0
	for _, m := range d.Models {
		n += len(m.Results)
	}
	return n
}
