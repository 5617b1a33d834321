package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/mittens/internal/domain"
	"github.com/mmcdole/mittens/internal/tui/styles"
)

// View renders the active tab above the status line and navigation bar
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	contentHeight := max(1, m.Height-ChromeHeight)

	var body string
	switch {
	case m.ShowHelp:
		body = m.renderHelp()
	case m.Tab == TabSwipe:
		body = m.renderSwipe()
	case m.Tab == TabLiked:
		body = m.renderLiked()
	case m.Tab == TabBreeds:
		body = m.renderBreeds(contentHeight)
	}

	body = lipgloss.NewStyle().Width(m.Width).Height(contentHeight).MaxHeight(contentHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(), m.renderNavBar())
}

func (m Model) renderSwipe() string {
	card, ok := m.Deck.Current()
	if !ok {
		if m.deckLoading {
			return styles.Spinner(m.SpinnerFrame) + " Fetching cats..."
		}
		return styles.DimStyle.Render("No more cats. Press r to fetch more.")
	}

	width := max(20, min(m.Width-4, 72))
	textWidth := width - 6 // border plus padding

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(card.BreedName()))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(styles.Truncate(card.Image.URL, textWidth)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(card.Image.Dimensions()))
	b.WriteString("\n\n")

	if card.Breed != nil {
		b.WriteString(renderBreedInfo(*card.Breed, textWidth))
	}

	cardView := styles.CardStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))

	actions := styles.DislikeStyle.Render("← nope") + "    " + styles.LikeStyle.Render("like →")
	if m.swiping {
		actions = styles.Spinner(m.SpinnerFrame) + " Sending vote..."
	}
	counts := styles.DimStyle.Render(fmt.Sprintf("liked %d · passed %d · queued %d",
		len(m.Deck.Liked()), len(m.Deck.Disliked()), m.Deck.Remaining()))

	return lipgloss.JoinVertical(lipgloss.Left, cardView, " "+actions, " "+counts)
}

// renderBreedInfo renders facts and trait bars for a breed
func renderBreedInfo(b domain.Breed, width int) string {
	var lines []string
	if b.Origin != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Origin: ")+b.Origin)
	}
	if b.LifeSpan != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Life span: ")+b.LifeSpan+" years")
	}
	if b.Weight.Metric != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Weight: ")+b.Weight.Metric+" kg")
	}
	if b.Temperament != "" {
		lines = append(lines, styles.AccentStyle.Render(styles.Truncate(b.Temperament, width)))
	}
	if b.Description != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(b.Description))
	}

	if traits := b.Traits(); len(traits) > 0 {
		lines = append(lines, "")
		for _, t := range traits {
			lines = append(lines, styles.Pad(t.Name, 18)+styles.RenderTraitBar(t.Score, domain.MaxTraitScore))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLiked() string {
	s := m.likedState

	header := styles.TitleStyle.Render("Liked cats")
	if s.TotalCount > 0 {
		header += styles.DimStyle.Render(fmt.Sprintf(" (%d)", s.TotalCount))
	}

	var lines []string
	lines = append(lines, header)

	switch {
	case len(s.Items) == 0 && s.Loading:
		lines = append(lines, styles.Spinner(m.SpinnerFrame)+" Loading liked cats...")
	case len(s.Items) == 0 && s.Err != "":
		lines = append(lines, styles.ErrorStyle.Render(s.Err)+styles.DimStyle.Render("  press r to retry"))
	case len(s.Items) == 0:
		lines = append(lines, styles.DimStyle.Render("No liked cats yet. Swipe right on a few!"))
	default:
		lines = append(lines, m.grid.View())
		switch {
		case s.Loading:
			lines = append(lines, styles.Spinner(m.SpinnerFrame)+" Loading more...")
		case s.Err != "":
			lines = append(lines, styles.ErrorStyle.Render(s.Err))
		case !s.HasMore:
			lines = append(lines, styles.DimStyle.Render("That's every cat you liked."))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBreeds(height int) string {
	var lines []string
	lines = append(lines, m.breedInput.View())

	switch {
	case m.breedSearching:
		lines = append(lines, styles.Spinner(m.SpinnerFrame)+" Searching...")
	case m.breedErr != "":
		lines = append(lines, styles.ErrorStyle.Render(m.breedErr))
	case len(m.breedResults) == 0:
		lines = append(lines, styles.DimStyle.Render("No breeds match."))
	}

	listWidth := max(16, m.Width/3)
	visible := max(1, height-len(lines))
	offset := 0
	if m.breedCursor >= visible {
		offset = m.breedCursor - visible + 1
	}

	var rows []string
	for i := offset; i < len(m.breedResults) && i < offset+visible; i++ {
		r := m.breedResults[i]
		selected := i == m.breedCursor
		name := styles.Truncate(r.Breed.Name, listWidth-2)
		if len([]rune(name)) == len([]rune(r.Breed.Name)) {
			// Match positions index the lowercase name, which has the same runes
			name = styles.HighlightMatches(name, r.MatchedIndexes, selected)
		}
		style := styles.NormalItemStyle
		if selected {
			style = styles.SelectedItemStyle
		}
		rows = append(rows, style.Width(listWidth).Render(name))
	}

	list := strings.Join(rows, "\n")
	detail := ""
	if m.breedCursor < len(m.breedResults) {
		b := m.breedResults[m.breedCursor].Breed
		detail = styles.TitleStyle.Render(b.Name) + "\n" + renderBreedInfo(b, max(20, m.Width-listWidth-4))
	}

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail))
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	var lines []string
	lines = append(lines, styles.TitleStyle.Render("Keys"), "")
	for _, t := range []Tab{TabSwipe, TabLiked, TabBreeds} {
		lines = append(lines, styles.AccentStyle.Render(t.String()))
		for _, b := range tabHelp(t) {
			lines = append(lines, "  "+renderBinding(b))
		}
	}
	lines = append(lines, "", styles.DimStyle.Render("? to close"))
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.StatusMsg == "" {
		return ""
	}
	if m.StatusIsErr {
		return styles.ErrorStyle.Render(m.StatusMsg)
	}
	return styles.SuccessStyle.Render(m.StatusMsg)
}

// renderNavBar renders the tab bar with the active tab's key hints
func (m Model) renderNavBar() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.Tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	left := strings.Join(tabs, "")

	var hints []string
	for _, b := range tabHelp(m.Tab) {
		hints = append(hints, renderBinding(b))
	}
	right := strings.Join(hints, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.NavBarStyle.Width(m.Width).Render(left)
	}
	return styles.NavBarStyle.Width(m.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
}
