// Package render turns the result store and detail views into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"revwhoix-cli/internal/detail"
	"revwhoix-cli/internal/results"
	"revwhoix-cli/internal/ui"
)

const NoMatches = "No domains match your filter criteria."

// NoResults is the message of a search that found nothing.
func NoResults(keyword string) string {
	return fmt.Sprintf("No domains found for '%s'.", keyword)
}

// Header is the "N domains for 'keyword'" line above the result grid.
func Header(store *results.Store) string {
	return fmt.Sprintf("%s domains for %s",
		ui.StyleValue.Render(GroupThousands(store.Count())),
		ui.StyleHeading.Render("'"+store.Keyword()+"'"))
}

// PageIndicator renders "Page X of Y" with disabled controls dimmed.
func PageIndicator(p results.Pagination) string {
	prev, next := "‹ prev", "next ›"
	if p.HasPrev {
		prev = ui.StyleValue.Render(prev)
	} else {
		prev = ui.StyleButtonDisabled.Render(prev)
	}
	if p.HasNext {
		next = ui.StyleValue.Render(next)
	} else {
		next = ui.StyleButtonDisabled.Render(next)
	}
	return fmt.Sprintf("%s  Page %d of %d  %s", prev, p.Page, p.TotalPages, next)
}

// Page renders the current page of the store. cursor marks one row (-1 for none).
func Page(store *results.Store, cursor int) string {
	return Rows(store, cursor) + "\n" + PageIndicator(store.Pagination())
}

// Rows renders the current page's rows, one per line, without a trailing
// newline or the page indicator.
func Rows(store *results.Store, cursor int) string {
	items := store.CurrentPageItems()
	if len(items) == 0 {
		return ui.StyleMuted.Render(NoMatches)
	}
	p := store.Pagination()
	offset := (p.Page - 1) * results.PageSize
	lines := make([]string, 0, len(items))
	for i, d := range items {
		marker := "  "
		line := d
		if i == cursor {
			marker = ui.StyleHeading.Render("› ")
			line = ui.StyleValue.Render(d)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, ui.StyleMuted.Render(fmt.Sprintf("%4d", offset+i+1)), line))
	}
	return strings.Join(lines, "\n")
}

// DetailOptions selects what Detail prints.
type DetailOptions struct {
	AllTabs bool
}

// Detail renders a detail view: the summary grid, the tab bar and the active
// tab (or every tab), then the raw text when it has been toggled visible.
func Detail(v *detail.View, opts DetailOptions) string {
	var b strings.Builder
	b.WriteString(ui.StyleTitle.Render("Domain Details: " + v.Domain))
	b.WriteString("\n\n")

	if v.Fallback() {
		b.WriteString(ui.StyleError.Render("✗ " + v.Error))
		b.WriteString("\n")
		b.WriteString(fields(v.Summary))
		return b.String()
	}

	b.WriteString(ui.StyleHeading.Render("Registration Information"))
	b.WriteString("\n")
	b.WriteString(fields(v.Summary))
	b.WriteString("\n")

	if opts.AllTabs {
		for _, t := range v.Tabs {
			b.WriteString(tab(t))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(TabBar(v))
		b.WriteString("\n\n")
		if t, ok := v.ActiveTab(); ok {
			b.WriteString(tab(t))
		}
	}

	if v.HasRaw() {
		b.WriteString("\n")
		b.WriteString(ui.StyleHeading.Render("Raw WHOIS Data"))
		b.WriteString(" ")
		b.WriteString(ui.StyleMuted.Render("[" + v.RawToggleLabel() + "]"))
		b.WriteString("\n")
		if v.RawVisible {
			b.WriteString(v.RawText)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func TabBar(v *detail.View) string {
	var parts []string
	for _, t := range v.Tabs {
		if t.ID == v.Active {
			parts = append(parts, ui.StyleTabActive.Render(t.ID.Title()))
		} else {
			parts = append(parts, ui.StyleTab.Render(t.ID.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func tab(t detail.Tab) string {
	var b strings.Builder
	b.WriteString(ui.StyleHeading.Render(t.Heading))
	b.WriteString("\n")
	if t.Placeholder != "" {
		b.WriteString(ui.StyleMuted.Render(t.Placeholder))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(fields(t.Fields))
	for _, item := range t.Items {
		b.WriteString("  • " + item + "\n")
	}
	for _, s := range t.Sections {
		b.WriteString(ui.StyleValue.Render(s.Title))
		b.WriteString("\n")
		for _, item := range s.Items {
			b.WriteString("  • " + item + "\n")
		}
	}
	return b.String()
}

func fields(fs []detail.Field) string {
	width := 0
	for _, f := range fs {
		width = max(width, len(f.Label))
	}
	var b strings.Builder
	for _, f := range fs {
		label := ui.StyleLabel.Render(fmt.Sprintf("%-*s", width+1, f.Label+":"))
		fmt.Fprintf(&b, "  %s %s\n", label, f.Value)
	}
	return b.String()
}

// GroupThousands formats n with comma separators, e.g. 12,345.
func GroupThousands(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
