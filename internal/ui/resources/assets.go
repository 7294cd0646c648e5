// Package resources serves the dashboard's static assets.
package resources

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StylesheetName is the dashboard stylesheet under /static/.
const StylesheetName = "benchboard.css"

// MinifyCSS strips whitespace and comments from a stylesheet with esbuild.
func MinifyCSS(css string) (string, error) {
	result := api.Transform(css, api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		LegalComments:    api.LegalCommentsNone,
		LogLevel:         api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, e := range result.Errors {
			if e.Location != nil {
				fmt.Fprintf(&msg, "%d:%d: ", e.Location.Line, e.Location.Column)
			}
			msg.WriteString(e.Text)
			msg.WriteString("\n")
		}
		return "", fmt.Errorf("esbuild errors:\n%s", msg.String())
	}
	return string(result.Code), nil
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
