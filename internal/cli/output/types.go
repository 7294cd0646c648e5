package output

import "github.com/leapstack-labs/benchboard/internal/dataset"

// ShowOutput is the JSON form of the show command.
type ShowOutput struct {
	Title    string           `json:"title"`
	Metadata dataset.Metadata `json:"metadata"`
	Columns  int              `json:"columns"`
	Models   []ModelSummary   `json:"models"`
}

// ModelSummary is one model card.
type ModelSummary struct {
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Badge    string         `json:"badge"`
	Subtitle string         `json:"subtitle"`
	Percent  map[string]int `json:"percent"`
}

// ValidateOutput is the JSON form of the validate command.
type ValidateOutput struct {
	Path     string            `json:"path"`
	Valid    bool              `json:"valid"`
	Models   int               `json:"models"`
	Results  int               `json:"results"`
	Problems []dataset.Problem `json:"problems,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// ThemeOutput is the JSON form of the theme command.
type ThemeOutput struct {
	Mode    string `json:"mode"`
	File    string `json:"file"`
	Changed bool   `json:"changed"`
}
