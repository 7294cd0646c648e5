package results

import (
	"fmt"

	"github.com/leapstack-labs/benchboard/internal/dataset"
)

// PassThreshold is the minimum score shown as a pass.
const PassThreshold = 0.99

// Verdict is the badge state of a row.
type Verdict string

// Verdicts. Knowledge rows are only ever pass or fail.
const (
	VerdictPass    Verdict = "pass"
	VerdictPartial Verdict = "partial"
	VerdictFail    Verdict = "fail"
)

// Classify returns the badge state of row.
func Classify(row Row) Verdict {
	if row.Score >= PassThreshold {
		return VerdictPass
	}
	switch row.Kind {
	case dataset.KindKnowledge:
		return VerdictFail
	case dataset.KindExecution:
		if row.Score <= 0 {
			return VerdictFail
		}
		return VerdictPartial
	default:
		panic(fmt.Sprintf("results: unhandled result kind %q", row.Kind))
	}
}

// Symbol is the glyph shown in front of the score.
func (v Verdict) Symbol() string {
	switch v {
	case VerdictPass:
		return "✓"
	case VerdictPartial:
		return "~"
	default:
		return "✗"
	}
}

// FormatScore renders a score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// Badge renders the symbol and score, e.g. "✓ 1.00".
func Badge(row Row) string {
	return Classify(row).Symbol() + " " + FormatScore(row.Score)
}
