package diagram

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Renderer turns diagram source into an SVG document. Implementations get a
// unique id per render that may be used for scratch files or SVG element ids.
type Renderer interface {
	Render(ctx context.Context, id, source string) (string, error)
}

// CLIRenderer shells out to the mermaid CLI (mmdc) through scratch files.
type CLIRenderer struct {
	command string
}

// NewCLIRenderer returns a renderer invoking the given command, usually
// "mmdc".
func NewCLIRenderer(command string) *CLIRenderer {
	if command == "" {
		command = "mmdc"
	}
	return &CLIRenderer{command: command}
}

func (r *CLIRenderer) Render(ctx context.Context, id, source string) (string, error) {
	dir, err := os.MkdirTemp("", "inkwell-diagram-")
	if err != nil {
		return "", fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, id+".mmd")
	out := filepath.Join(dir, id+".svg")
	if err := os.WriteFile(in, []byte(source), 0644); err != nil {
		return "", fmt.Errorf("writing diagram source: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.command, "-i", in, "-o", out, "--quiet", "--svgId", "d-"+id)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("rendering diagram: %w: %s", err, output)
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("reading rendered diagram: %w", err)
	}
	return string(svg), nil
}
