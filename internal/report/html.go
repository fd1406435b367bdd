package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"ddp-generator/internal/models"
)

// Markdown renders the generation summary as GitHub flavoured Markdown.
func Markdown(result *models.GenerationResult) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# DDP - %s\n\n", escapeInline(result.ProcessName))
	fmt.Fprintf(&md, "Arquivo: `%s`  \nTotal de etapas: %d\n\n", result.File, result.TotalSteps)

	md.WriteString("| Slide | Etapa |\n|---:|---|\n")
	for _, s := range result.Slides {
		fmt.Fprintf(&md, "| %d | %s |\n", s.SlideIndex, escapeCell(s.Label))
	}

	for _, step := range result.Steps {
		fmt.Fprintf(&md, "\n## %s\n\n%s\n\n", escapeInline(step.Label()), escapeInline(step.Description))
		for _, line := range strings.Split(step.Rules, "\n") {
			fmt.Fprintf(&md, "- %s\n", escapeInline(line))
		}
	}
	return md.String()
}

// WriteHTML renders the Markdown summary into a standalone HTML page.
func WriteHTML(path string, result *models.GenerationResult) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(result)), &body); err != nil {
		return err
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>DDP - %s</title>\n", html.EscapeString(result.ProcessName))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

func escapeInline(s string) string {
	return markdownEscaper.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
