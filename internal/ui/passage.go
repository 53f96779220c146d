package ui

import (
	"fmt"
	"strings"

	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/resolve"
)

// PassageHeading formats the display heading for one passage, e.g.
// "Romans 3:16 (kjv)".
func PassageHeading(p model.Passage) string {
	var b strings.Builder
	b.WriteString(displayTitle(p))
	if p.Reference.Chapter != "" {
		b.WriteString(" ")
		b.WriteString(p.Reference.Chapter)
		if p.MatchedSection != "" {
			b.WriteString(":")
			b.WriteString(p.MatchedSection)
		}
	}
	if p.MatchedVersion != "" {
		fmt.Fprintf(&b, " (%s)", p.MatchedVersion)
	}
	return b.String()
}

func displayTitle(p model.Passage) string {
	if title, ok := p.Event.FirstTag(model.TagTitle); ok && title != "" {
		return title
	}
	return p.Reference.Title
}

// RenderResult formats a resolution result for terminal display. Passage
// content is rendered as markdown on a TTY and printed raw otherwise.
// Warnings follow the passages; a NotFound result renders a single line.
func RenderResult(res resolve.Result, dc *DisplayContext) string {
	var b strings.Builder

	switch res.Status {
	case model.StatusNotFound:
		b.WriteString(Error("no passages found"))
		if res.VersionNotFound {
			b.WriteString(" ")
			b.WriteString(Hint("(requested version unavailable)"))
		}
		b.WriteString("\n")
	case model.StatusPending:
		b.WriteString(Info("retrieval still pending"))
		b.WriteString("\n")
	default:
		for _, p := range res.Passages {
			b.WriteString(AccentBold.Render(PassageHeading(p)))
			b.WriteString("\n")
			b.WriteString(renderContent(p.Event.Content, dc))
		}
		if res.VersionNotFound {
			b.WriteString(Warning("requested version unavailable, showing other versions"))
			b.WriteString("\n")
		}
	}

	if len(res.Warnings) > 0 {
		warnings := NewList()
		for _, w := range res.Warnings {
			warnings.Add(Muted.Render(w))
		}
		b.WriteString(warnings.String())
	}

	return b.String()
}

func renderContent(content string, dc *DisplayContext) string {
	if dc == nil || !dc.IsTTY {
		return strings.TrimRight(content, "\n") + "\n\n"
	}
	rendered, err := RenderMarkdown(content, dc.RenderWidth())
	if err != nil {
		return strings.TrimRight(content, "\n") + "\n\n"
	}
	return rendered + "\n"
}
