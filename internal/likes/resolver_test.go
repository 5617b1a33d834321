package likes

import (
	"context"
	"fmt"
	"testing"

	"github.com/mmcdole/mittens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioVotes() []domain.Vote {
	return []domain.Vote{like("a"), dislike("b"), like("c"), like("d")}
}

func TestResolvePageScenario(t *testing.T) {
	ctx := context.Background()
	src := newFakeClient(scenarioVotes()...)

	p0, err := ResolvePage(ctx, src, "u", 0, 2, nil)
	require.NoError(t, err)
	lp0 := p0.LikedPage()
	assert.Equal(t, []string{"a", "c"}, imageIDs(lp0.Images))
	assert.True(t, lp0.HasMore)
	assert.Equal(t, 3, lp0.TotalCount)

	p1, err := ResolvePage(ctx, src, "u", 1, 2, nil)
	require.NoError(t, err)
	lp1 := p1.LikedPage()
	assert.Equal(t, []string{"d"}, imageIDs(lp1.Images))
	assert.False(t, lp1.HasMore)
	assert.Equal(t, 3, lp1.TotalCount)

	_, images := src.calls()
	assert.NotContains(t, images, "b", "disliked votes are never resolved")
}

func TestResolvePageDropsUnavailableImage(t *testing.T) {
	src := newFakeClient(scenarioVotes()...)
	src.failImages["c"] = true

	p, err := ResolvePage(context.Background(), src, "u", 0, 2, nil)
	require.NoError(t, err)

	require.Len(t, p.Outcomes, 2)
	assert.False(t, p.Outcomes[0].Unavailable())
	assert.True(t, p.Outcomes[1].Unavailable())
	assert.ErrorIs(t, p.Outcomes[1].Err, domain.ErrNotFound)

	lp := p.LikedPage()
	assert.Equal(t, []string{"a"}, imageIDs(lp.Images))
	assert.Equal(t, []string{"c"}, lp.Unavailable)
	assert.Equal(t, 3, lp.TotalCount, "total counts liked votes, not resolved images")
}

func TestResolvePageEmptyVotes(t *testing.T) {
	src := newFakeClient()

	p, err := ResolvePage(context.Background(), src, "u", 0, 10, nil)
	require.NoError(t, err)

	lp := p.LikedPage()
	assert.Empty(t, lp.Images)
	assert.False(t, lp.HasMore)
	assert.Equal(t, 0, lp.TotalCount)

	_, images := src.calls()
	assert.Empty(t, images)
}

func TestResolvePagePastEnd(t *testing.T) {
	src := newFakeClient(scenarioVotes()...)

	p, err := ResolvePage(context.Background(), src, "u", 5, 2, nil)
	require.NoError(t, err)

	assert.Empty(t, p.Outcomes)
	assert.False(t, p.HasMore)
	assert.Equal(t, 3, p.TotalCount)
	_, images := src.calls()
	assert.Empty(t, images)
}

func TestResolvePageVoteListFailure(t *testing.T) {
	src := newFakeClient(scenarioVotes()...)
	src.votesErr = errBoom

	_, err := ResolvePage(context.Background(), src, "u", 0, 2, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestResolvePageHonoursCancellation(t *testing.T) {
	src := newFakeClient(scenarioVotes()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolvePage(ctx, src, "u", 0, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// Concatenating every page reproduces the liked set in order, and hasMore
// is true iff (page+1)*size < liked count.
func TestResolvePagePartitionProperty(t *testing.T) {
	ctx := context.Background()

	for n := 0; n <= 12; n++ {
		for size := 1; size <= 5; size++ {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				var votes []domain.Vote
				var want []string
				for i := 0; i < n; i++ {
					id := fmt.Sprintf("img-%d", i)
					if i%3 == 1 {
						votes = append(votes, dislike(id))
						continue
					}
					votes = append(votes, like(id))
					want = append(want, id)
				}
				src := newFakeClient(votes...)

				var got []string
				for page := 0; ; page++ {
					p, err := ResolvePage(ctx, src, "u", page, size, nil)
					require.NoError(t, err)
					lp := p.LikedPage()

					assert.Equal(t, len(want), lp.TotalCount)
					assert.Equal(t, (page+1)*size < len(want), lp.HasMore)

					got = append(got, imageIDs(lp.Images)...)
					if !lp.HasMore {
						break
					}
				}
				if len(want) == 0 {
					assert.Empty(t, got)
					return
				}
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		page, size, n int
		start, end    int
	}{
		{0, 2, 3, 0, 2},
		{1, 2, 3, 2, 3},
		{2, 2, 3, 3, 3},
		{0, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := Window(tt.page, tt.size, tt.n)
		assert.Equal(t, tt.start, start, "start for %+v", tt)
		assert.Equal(t, tt.end, end, "end for %+v", tt)
	}
}
