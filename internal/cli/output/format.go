package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a markdown header.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatBar draws a percentage as a bar of width cells.
func FormatBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := (percent*width + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
