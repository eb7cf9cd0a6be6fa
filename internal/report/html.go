package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; max-width: 1100px; margin: 2em auto; color: #222; }
table { border-collapse: collapse; font-size: 0.9em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
th { background: #f4f4f4; }
</style>
</head>
<body>
%s
</body>
</html>
`

// ToHTML converts a Markdown report into a standalone HTML page.
func ToHTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return []byte(fmt.Sprintf(pageTemplate, html.EscapeString(title), buf.String())), nil
}

// WriteHTML renders markdown and writes it to path, creating parent directories.
func WriteHTML(path, title, markdown string) error {
	page, err := ToHTML(title, markdown)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
