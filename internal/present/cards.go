package present

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/benchboard/internal/dataset"
)

// ScoreBar is one labelled percentage bar on a card.
type ScoreBar struct {
	Label   string
	Percent int
}

// Card is the summary of one model.
type Card struct {
	Name           string
	Color          Color
	OverallPercent int
	Subtitle       string
	Bars           []ScoreBar
}

// Badge is the overall score badge, e.g. "#82%".
func (c Card) Badge() string {
	return fmt.Sprintf("#%d%%", c.OverallPercent)
}

// Cards returns one card per model in dataset order.
func Cards(ds *dataset.Dataset, colors []Color) []Card {
	cards := make([]Card, 0, len(ds.Models))
	for i, m := range ds.Models {
		bars := make([]ScoreBar, 0, len(dataset.Categories))
		for _, c := range dataset.Categories {
			bars = append(bars, ScoreBar{Label: Label(c), Percent: Percent(m.Scores.Get(c))})
		}
		cards = append(cards, Card{
			Name:           m.Name,
			Color:          colors[i],
			OverallPercent: Percent(m.Scores.Overall),
			Subtitle:       Subtitle(m),
			Bars:           bars,
		})
	}
	return cards
}

// Subtitle describes a model's configuration and result mix, e.g.
// "openai · temp 0.7 · 2 knowledge · 2 execution".
func Subtitle(m dataset.ModelEntry) string {
	k, e := m.CountByKind()
	return fmt.Sprintf("%s · temp %s · %d knowledge · %d execution",
		m.Config.Kind, strconv.FormatFloat(m.Config.Temperature, 'f', -1, 64), k, e)
}
