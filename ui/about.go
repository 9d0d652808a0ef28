package ui

import (
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const aboutSource = "content/about.md"

// renderAbout converts the embedded about page from markdown once at startup
func renderAbout() (template.HTML, error) {
	source, err := embeddedFiles.ReadFile(aboutSource)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", aboutSource, err)
	}
	return markdownToHTML(source), nil
}

func markdownToHTML(source []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.Render(p.Parse(source), renderer))
}
