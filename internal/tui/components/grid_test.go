package components

import (
	"fmt"
	"testing"

	"github.com/mmcdole/mittens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridImages(n int) []domain.Image {
	out := make([]domain.Image, n)
	for i := range out {
		out[i] = domain.Image{ID: fmt.Sprintf("img%d", i), Width: 640, Height: 480}
	}
	return out
}

func TestGridNavigation(t *testing.T) {
	g := NewGrid()
	g.SetSize(80, 40)
	g.SetItems(gridImages(5))

	g.MoveRight()
	assert.Equal(t, 1, g.Cursor())
	g.MoveDown()
	assert.Equal(t, 3, g.Cursor())
	g.MoveDown()
	assert.Equal(t, 4, g.Cursor(), "short last row lands on the last item")
	assert.True(t, g.AtLastRow())
	g.MoveDown()
	assert.Equal(t, 4, g.Cursor())

	g.MoveUp()
	assert.Equal(t, 2, g.Cursor())
	assert.False(t, g.AtLastRow())
	g.Home()
	assert.Equal(t, 0, g.Cursor())
	g.MoveLeft()
	assert.Equal(t, 0, g.Cursor())
	g.End()
	assert.Equal(t, 4, g.Cursor())

	img, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "img4", img.ID)
}

func TestGridSetItemsKeepsCursor(t *testing.T) {
	g := NewGrid()
	g.SetSize(80, 40)
	g.SetItems(gridImages(4))
	g.End()

	g.SetItems(gridImages(8))
	assert.Equal(t, 3, g.Cursor())
	assert.False(t, g.AtLastRow())

	g.SetItems(gridImages(2))
	assert.Equal(t, 1, g.Cursor(), "cursor is clamped when items shrink")
}

func TestGridEmpty(t *testing.T) {
	g := NewGrid()
	g.MoveDown()
	g.End()

	_, ok := g.Selected()
	assert.False(t, ok)
	assert.True(t, g.AtLastRow())
	assert.Empty(t, g.View())
}

func TestGridScrollsToCursor(t *testing.T) {
	g := NewGrid()
	g.SetSize(80, 8) // two visible rows
	g.SetItems(gridImages(10))

	g.End()
	view := g.View()
	assert.Contains(t, view, "img9")
	assert.Contains(t, view, "↑ more")
	assert.NotContains(t, view, "img0")
}
