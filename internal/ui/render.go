package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/berktools/berk/internal/word"
)

// WordMarkdown formats w as a markdown document with one section per field.
// Pronunciation gets its own section, so the summary folded into the
// etymology by word.ToWordData is stripped here.
func WordMarkdown(w word.WordData) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(escapeMarkdown(w.Word))
	b.WriteString("\n\n")

	section(&b, "Definition")
	paragraph(&b, w.Definition)

	section(&b, "Example Sentences")
	list(&b, w.ExampleSentences)

	section(&b, "Turkish Equivalent")
	list(&b, w.TurkishEquivalent)

	section(&b, "Etymology")
	etym := strings.TrimSpace(w.EtymologyText(false))
	if w.EtymologyLink != "" {
		if etym != "" {
			etym += " "
		}
		etym += "[Source](" + w.EtymologyLink + ")"
	}
	paragraph(&b, etym)

	if w.Pronunciation != nil {
		section(&b, "Pronunciation")
		paragraph(&b, word.PronunciationSummary(w.Pronunciation))
	}

	section(&b, "How to Remember")
	paragraph(&b, w.HowToRemember)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// WordText formats w as plain text. Used when markdown rendering fails and by
// the non-interactive commands.
func WordText(w word.WordData) string {
	var b strings.Builder
	b.WriteString(w.Word)
	b.WriteString("\n")

	field := func(title, body string) {
		b.WriteString("\n")
		b.WriteString(title)
		b.WriteString("\n")
		if strings.TrimSpace(body) == "" {
			b.WriteString("  -\n")
			return
		}
		for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	bullets := func(title string, items []string) {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, "• "+item)
		}
		field(title, strings.Join(lines, "\n"))
	}

	field("Definition", w.Definition)
	bullets("Example Sentences", w.ExampleSentences)
	bullets("Turkish Equivalent", w.TurkishEquivalent)
	etym := w.EtymologyText(false)
	if w.EtymologyLink != "" {
		etym = strings.TrimSpace(etym + "\nSource: " + w.EtymologyLink)
	}
	field("Etymology", etym)
	if w.Pronunciation != nil {
		field("Pronunciation", word.PronunciationSummary(w.Pronunciation))
	}
	field("How to Remember", w.HowToRemember)
	return b.String()
}

// renderer caches a glamour renderer for one style and width.
type renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
}

// Render renders w for a terminal of the given width, falling back to plain
// text when glamour fails.
func (r *renderer) Render(w word.WordData, style string, width int) string {
	if width < 20 {
		width = 20
	}
	if r.term == nil || r.style != style || r.width != width {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return WordText(w)
		}
		r.term, r.style, r.width = term, style, width
	}
	out, err := r.term.Render(WordMarkdown(w))
	if err != nil {
		return WordText(w)
	}
	return strings.TrimRight(out, "\n")
}

func section(b *strings.Builder, title string) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
}

func paragraph(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		b.WriteString("_None_\n\n")
		return
	}
	// Keep single newlines as hard breaks.
	b.WriteString(strings.ReplaceAll(text, "\n", "  \n"))
	b.WriteString("\n\n")
}

func list(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("_None_\n\n")
		return
	}
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(escapeMarkdown(item))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
