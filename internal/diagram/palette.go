package diagram

import (
	"encoding/json"
	"fmt"

	"github.com/catpaladin/inkwell/internal/theme"
)

// Palette carries the colors the renderer is initialized with for one mode.
type Palette struct {
	Primary    string
	Secondary  string
	Background string
	Line       string
	Text       string
}

// PaletteFor returns the palette matching the site theme.
func PaletteFor(mode theme.Mode) Palette {
	if mode == theme.Light {
		return Palette{
			Primary:    "#e8e8e8",
			Secondary:  "#d0d0d0",
			Background: "#ffffff",
			Line:       "#555555",
			Text:       "#1a1a1a",
		}
	}
	return Palette{
		Primary:    "#2d3748",
		Secondary:  "#4a5568",
		Background: "#1a202c",
		Line:       "#a0aec0",
		Text:       "#e2e8f0",
	}
}

// InitDirective serializes the palette as a mermaid init directive to be
// prepended to the diagram source. Flowchart and sequence settings are
// overridden so both diagram families pick up the node and actor colors.
func (p Palette) InitDirective() string {
	cfg := map[string]interface{}{
		"theme": "base",
		"themeVariables": map[string]string{
			"primaryColor":        p.Primary,
			"primaryTextColor":    p.Text,
			"primaryBorderColor":  p.Line,
			"secondaryColor":      p.Secondary,
			"background":          p.Background,
			"lineColor":           p.Line,
			"textColor":           p.Text,
			"mainBkg":             p.Primary,
			"actorBkg":            p.Primary,
			"actorTextColor":      p.Text,
			"actorLineColor":      p.Line,
			"signalColor":         p.Line,
			"signalTextColor":     p.Text,
			"noteBkgColor":        p.Secondary,
			"noteTextColor":       p.Text,
			"clusterBkg":          p.Background,
			"edgeLabelBackground": p.Background,
		},
		"flowchart": map[string]interface{}{
			"useMaxWidth": true,
			"htmlLabels":  false,
		},
		"sequence": map[string]interface{}{
			"useMaxWidth":  true,
			"mirrorActors": false,
		},
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		// The map above is static and always marshals.
		return ""
	}
	return fmt.Sprintf("%%%%{init: %s}%%%%\n", data)
}
