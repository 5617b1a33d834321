package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/mittens/internal/domain"
	"github.com/mmcdole/mittens/internal/tui/styles"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Lines of text inside each cell
	CellLines = 2

	GridColumns = 2
)

// Grid is the two-column liked-images browser
type Grid struct {
	items []domain.Image

	// Selection; offset is the first visible row
	cursor      int
	offset      int
	visibleRows int

	width  int
	height int
}

// NewGrid creates an empty grid
func NewGrid() Grid {
	return Grid{visibleRows: 1}
}

// SetItems replaces the content. The cursor is kept where it is so that
// appended pages do not move the selection.
func (g *Grid) SetItems(items []domain.Image) {
	g.items = items
	if g.cursor >= len(items) {
		g.cursor = max(0, len(items)-1)
	}
	g.ensureVisible()
}

// Len returns the number of items
func (g Grid) Len() int { return len(g.items) }

// SetSize sets the grid's outer dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.visibleRows = max(1, height/(CellLines+BorderHeight))
	g.ensureVisible()
}

// Cursor returns the selected index
func (g Grid) Cursor() int { return g.cursor }

// Selected returns the selected image
func (g Grid) Selected() (domain.Image, bool) {
	if g.cursor < 0 || g.cursor >= len(g.items) {
		return domain.Image{}, false
	}
	return g.items[g.cursor], true
}

// MoveUp moves the cursor one row up
func (g *Grid) MoveUp() { g.setCursor(g.cursor - GridColumns) }

// MoveDown moves the cursor one row down, landing on the last item when the
// row below is short
func (g *Grid) MoveDown() {
	if g.row(g.cursor) == g.row(len(g.items)-1) {
		return
	}
	g.setCursor(min(g.cursor+GridColumns, len(g.items)-1))
}

// MoveLeft moves the cursor one cell left
func (g *Grid) MoveLeft() { g.setCursor(g.cursor - 1) }

// MoveRight moves the cursor one cell right
func (g *Grid) MoveRight() { g.setCursor(g.cursor + 1) }

// Home jumps to the first item
func (g *Grid) Home() { g.setCursor(0) }

// End jumps to the last item
func (g *Grid) End() { g.setCursor(len(g.items) - 1) }

// AtLastRow reports whether the cursor sits on the final row
func (g Grid) AtLastRow() bool {
	if len(g.items) == 0 {
		return true
	}
	return g.row(g.cursor) == g.row(len(g.items)-1)
}

func (g *Grid) setCursor(pos int) {
	if len(g.items) == 0 {
		g.cursor = 0
		return
	}
	g.cursor = max(0, min(pos, len(g.items)-1))
	g.ensureVisible()
}

func (g Grid) row(i int) int { return i / GridColumns }

// ensureVisible ensures the cursor row is visible
func (g *Grid) ensureVisible() {
	r := g.row(g.cursor)
	if r < g.offset {
		g.offset = r
	}
	if r >= g.offset+g.visibleRows {
		g.offset = r - g.visibleRows + 1
	}
}

// View renders the visible rows
func (g Grid) View() string {
	if len(g.items) == 0 {
		return ""
	}

	cellWidth := max(10, g.width/GridColumns-BorderWidth)
	textWidth := max(1, cellWidth-HorizontalPadding)

	var rows []string
	lastRow := g.row(len(g.items) - 1)
	for r := g.offset; r <= lastRow && r < g.offset+g.visibleRows; r++ {
		var cells []string
		for c := 0; c < GridColumns; c++ {
			i := r*GridColumns + c
			if i >= len(g.items) {
				break
			}
			cells = append(cells, renderCell(g.items[i], i == g.cursor, cellWidth, textWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if g.offset > 0 {
		rows = append([]string{styles.DimStyle.Render("↑ more")}, rows...)
	}
	return strings.Join(rows, "\n")
}

func renderCell(img domain.Image, selected bool, cellWidth, textWidth int) string {
	style := styles.GridCellStyle
	if selected {
		style = styles.GridCellSelectedStyle
	}

	title := "Unknown breed"
	if b, ok := img.PrimaryBreed(); ok {
		title = b.Name
	}
	title = styles.TitleStyle.Render(styles.Truncate(title, textWidth))
	meta := styles.DimStyle.Render(styles.Truncate(img.ID+" · "+img.Dimensions(), textWidth))

	return style.Width(cellWidth).Render(title + "\n" + meta)
}
