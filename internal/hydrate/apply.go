package hydrate

import (
	"os"
	"path/filepath"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/catpaladin/inkwell/internal/theme"
)

// ApplyTheme rewrites the data-theme root marker on every built page so a
// runtime toggle survives the next page load. Pages without the marker are
// left untouched.
func ApplyTheme(dir string, mode theme.Mode) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		root, err := xhtml.Parse(strings.NewReader(string(raw)))
		if err != nil {
			return err
		}

		node := findByAtom(root, atom.Html)
		if node == nil {
			return nil
		}
		current := attr(node, "data-theme")
		if current == "" || current == string(mode) {
			return nil
		}
		setAttr(node, "data-theme", string(mode))

		var b strings.Builder
		if err := xhtml.Render(&b, root); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(b.String()), info.Mode())
	})
}
