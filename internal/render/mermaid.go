package render

import (
	"encoding/base64"
	"html"
	"strings"
)

// ConvertMermaidBlocks rewrites <pre><code class="language-mermaid">...</code></pre>
// blocks into diagram placeholder divs. The diagram source is carried as a
// base64 attribute payload so later processing never has to undo HTML escaping.
func ConvertMermaidBlocks(htmlContent string) string {
	const openTag = `<pre><code class="language-mermaid">`
	const closeTag = `</code></pre>`

	for {
		idx := strings.Index(htmlContent, openTag)
		if idx == -1 {
			break
		}
		endIdx := strings.Index(htmlContent[idx:], closeTag)
		if endIdx == -1 {
			break
		}
		endIdx += idx

		escaped := htmlContent[idx+len(openTag) : endIdx]
		source := html.UnescapeString(escaped)
		payload := base64.StdEncoding.EncodeToString([]byte(source))
		replacement := `<div class="mermaid" data-diagram="` + payload + `"></div>`
		htmlContent = htmlContent[:idx] + replacement + htmlContent[endIdx+len(closeTag):]
	}

	return htmlContent
}
