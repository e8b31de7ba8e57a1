package mail

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector covers the elements mail clients use to lay out one field
// per visual line.
const blockSelector = "p, div, li, h1, h2, h3, td"

// FlattenHTML converts an HTML email body into line-oriented plain text:
// one line per block element, <br> preserved as a line break. The field
// extractor only understands `Field: value` lines, so structure matters
// more than fidelity here.
func FlattenHTML(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML body: %w", err)
	}

	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("&#10;")
	})

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Only leaf blocks; containers would duplicate their children.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		for _, line := range strings.Split(s.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})

	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}
