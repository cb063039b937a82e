package board

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor parses a hex color ("#rgb" or "#rrggbb", leading '#'
// optional) and returns it in lower-case "#rrggbb" form.
func NormalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
