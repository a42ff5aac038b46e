package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/usecase"
)

var (
	chatColor = lipgloss.Color("#2563eb")
	qaColor   = lipgloss.Color("#16a34a")

	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#333333"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")).Background(lipgloss.Color("#111111")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	sourceHeading = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

func renderTabs(mode entity.Mode) string {
	chat, qa := tabStyle, tabStyle
	if mode == entity.ModeChat {
		chat = chat.Background(chatColor)
	} else {
		qa = qa.Background(qaColor)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chat.Render("Chat"), " ", qa.Render("Doc Q&A"))
}

// RenderResult draws the error line, answer pane and QA sources of a view.
func RenderResult(v usecase.View, width int) string {
	var b strings.Builder
	if v.Err != "" {
		b.WriteString(errorStyle.Render("Error: " + v.Err))
		b.WriteString("\n")
	}

	answer := v.Answer
	if answer == "" {
		answer = "—"
	}
	style := answerStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	b.WriteString(style.Render(answer))

	if len(v.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(sourceHeading.Render("Sources"))
		b.WriteString("\n")
		b.WriteString(FormatSources(v.Sources))
	}
	return b.String()
}

// FormatSources lists snippets with their scores, one per line.
func FormatSources(sources []entity.SourceSnippet) string {
	lines := make([]string, len(sources))
	for i, s := range sources {
		score := mutedStyle.Render(fmt.Sprintf("(distance %.3f, keyword %.3f)", s.Distance, s.KeywordScore))
		lines[i] = fmt.Sprintf("%d. %s %s", i+1, s.Text, score)
	}
	return strings.Join(lines, "\n")
}
