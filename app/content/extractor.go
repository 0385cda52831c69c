package content

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
)

// Extractor pulls the readable article body out of a full HTML page
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run returns the article HTML. pageURL resolves relative links and may be empty.
func (e *Extractor) Run(data []byte, pageURL string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	base := &url.URL{}
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return "", fmt.Errorf("invalid page URL: %w", err)
		}
		base = parsed
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(data), base)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}

	content := strings.TrimSpace(buf.String())
	if content == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully", "url", pageURL, "content_length", len(content))

	return content, nil
}
