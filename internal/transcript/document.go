package transcript

import "strings"

// Render builds the final Markdown document: the video title as heading,
// an optional executive summary section when the AI path produced one, and
// the paragraphs separated by blank lines.
func Render(title, summary string, paragraphs []string) string {
	var b strings.Builder

	if title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	if summary != "" {
		b.WriteString("## Executive Summary\n\n")
		b.WriteString(strings.TrimSpace(summary))
		b.WriteString("\n\n---\n\n## Full Transcript\n\n")
	}

	for _, p := range paragraphs {
		b.WriteString(p)
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String()) + "\n"
}
