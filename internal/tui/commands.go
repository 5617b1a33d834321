package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/mittens/internal/deck"
	"github.com/mmcdole/mittens/internal/likes"
	"github.com/mmcdole/mittens/internal/search"
)

// Command factories for async operations

const (
	requestTimeout = 30 * time.Second
	tickInterval   = 100 * time.Millisecond
	statusDuration = 3 * time.Second
)

// LoadDeckCmd loads breeds, seeds the breed index with them and fills the
// first batch of cards. A breed failure is not fatal: cards then fall
// back to "Unknown breed".
func LoadDeckCmd(d *deck.Deck, svc *search.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		breedErr := d.LoadBreeds(ctx)
		if breedErr == nil && svc != nil {
			svc.SetBreeds(d.Breeds())
		}

		added, err := d.Fill(ctx)
		return DeckReadyMsg{Breeds: len(d.Breeds()), Cards: added, BreedErr: breedErr, Err: err}
	}
}

// FillDeckCmd fetches another batch of cards
func FillDeckCmd(d *deck.Deck) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		added, err := d.Fill(ctx)
		return DeckFilledMsg{Added: added, Err: err}
	}
}

// LikeCmd likes the current card
func LikeCmd(d *deck.Deck) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return SwipeResultMsg{Result: d.Like(ctx), Liked: true}
	}
}

// DislikeCmd dislikes the current card
func DislikeCmd(d *deck.Deck) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return SwipeResultMsg{Result: d.Dislike(ctx)}
	}
}

// LoadLikedCmd shows the first page of liked cats
func LoadLikedCmd(p *likes.Paginator) tea.Cmd {
	return likedCmd(p, p.Load)
}

// RefreshLikedCmd drops cached pages and votes and reloads page 0
func RefreshLikedCmd(p *likes.Paginator) tea.Cmd {
	return likedCmd(p, p.Refresh)
}

// LoadMoreLikedCmd appends the next page of liked cats
func LoadMoreLikedCmd(p *likes.Paginator) tea.Cmd {
	return likedCmd(p, func(ctx context.Context) error {
		_, err := p.LoadMore(ctx)
		return err
	})
}

// likedCmd runs op and reports the paginator's state afterwards. The
// failure message already lives in State.Err.
func likedCmd(p *likes.Paginator, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_ = op(ctx)
		return LikedStateMsg{State: p.State()}
	}
}

// SearchBreedsCmd runs a provider search with local fallback
func SearchBreedsCmd(svc *search.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		results, err := svc.Search(ctx, query)
		return BreedResultsMsg{Query: query, Results: results, Err: err}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
