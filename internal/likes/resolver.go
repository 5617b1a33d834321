package likes

import (
	"context"
	"log/slog"

	"github.com/mmcdole/mittens/internal/domain"
)

// Source is what page resolution needs from the remote client
type Source interface {
	ListVotes(ctx context.Context, subID string) ([]domain.Vote, error)
	GetImageByID(ctx context.Context, id string) (*domain.Image, error)
}

// Outcome is the per-vote result of resolving an image id.
// Image is nil when the image is unavailable; Err holds the cause.
type Outcome struct {
	Vote  domain.Vote
	Image *domain.Image
	Err   error
}

// Unavailable reports whether the image could not be resolved
func (o Outcome) Unavailable() bool {
	return o.Image == nil
}

// Page is a resolved window over the liked votes
type Page struct {
	Index      int
	Outcomes   []Outcome
	HasMore    bool
	TotalCount int
}

// LikedPage drops unavailable outcomes and records their image ids
func (p Page) LikedPage() domain.LikedPage {
	lp := domain.LikedPage{
		Images:     make([]domain.Image, 0, len(p.Outcomes)),
		HasMore:    p.HasMore,
		TotalCount: p.TotalCount,
	}
	for _, o := range p.Outcomes {
		if o.Unavailable() {
			lp.Unavailable = append(lp.Unavailable, o.Vote.ImageID)
			continue
		}
		lp.Images = append(lp.Images, *o.Image)
	}
	return lp
}

// FilterLiked keeps votes with a positive value, preserving provider order
func FilterLiked(votes []domain.Vote) []domain.Vote {
	liked := make([]domain.Vote, 0, len(votes))
	for _, v := range votes {
		if v.IsLike() {
			liked = append(liked, v)
		}
	}
	return liked
}

// Window returns the [start, end) bounds of page within n items
func Window(page, pageSize, n int) (start, end int) {
	start = page * pageSize
	end = start + pageSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return start, end
}

// ResolvePage fetches the subject's votes, filters to likes, slices the
// requested window and resolves each image individually. A failed lookup
// becomes an unavailable Outcome; only the vote-list fetch can fail the page.
func ResolvePage(ctx context.Context, src Source, subID string, page, pageSize int, logger *slog.Logger) (Page, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	votes, err := src.ListVotes(ctx, subID)
	if err != nil {
		return Page{}, err
	}

	liked := FilterLiked(votes)
	result := Page{Index: page, TotalCount: len(liked)}

	if page*pageSize >= len(liked) {
		return result, nil
	}

	start, end := Window(page, pageSize, len(liked))
	result.HasMore = page*pageSize+pageSize < len(liked)
	result.Outcomes = make([]Outcome, 0, end-start)

	for _, v := range liked[start:end] {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		img, err := src.GetImageByID(ctx, v.ImageID)
		if err != nil {
			logger.Debug("liked image unavailable", "imageID", v.ImageID, "voteID", v.ID, "error", err)
			result.Outcomes = append(result.Outcomes, Outcome{Vote: v, Err: err})
			continue
		}
		result.Outcomes = append(result.Outcomes, Outcome{Vote: v, Image: img})
	}

	logger.Debug("resolved liked page",
		"subID", subID,
		"page", page,
		"resolved", len(result.Outcomes),
		"total", result.TotalCount,
		"hasMore", result.HasMore,
	)
	return result, nil
}
