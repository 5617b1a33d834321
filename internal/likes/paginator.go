package likes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/mittens/internal/domain"
	"github.com/mmcdole/mittens/internal/metrics"
)

const (
	DefaultPageSize = 10
	DefaultSubject  = "default-user"
)

// Client is the remote surface the paginator drives (consumer-defined interface)
type Client interface {
	Source
	InvalidateVotes(subID string)
}

// State is a snapshot of the paginator for rendering
type State struct {
	Items      []domain.Image
	Page       int
	Loading    bool
	Err        string // Display-ready message of the last failure, empty if none
	HasMore    bool
	TotalCount int
}

// Paginator presents the subject's vote history as an incrementally loaded
// sequence of liked images. Its page cache is independent of the client's
// vote cache TTL and is cleared only by Refresh.
type Paginator struct {
	client   Client
	subID    string
	pageSize int
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu         sync.Mutex
	items      []domain.Image
	page       int
	pageCache  map[int]domain.LikedPage
	loading    bool
	lastErr    string
	hasMore    bool
	totalCount int

	// generation is bumped by every Refresh; results from an older
	// generation are discarded on arrival.
	generation uint64
}

// Option configures a Paginator
type Option func(*Paginator)

// WithPageSize sets the page size
func WithPageSize(n int) Option {
	return func(p *Paginator) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// WithMetrics records applied pages
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Paginator) { p.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Paginator) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPaginator creates a paginator for subID (DefaultSubject when empty)
func NewPaginator(client Client, subID string, opts ...Option) *Paginator {
	if subID == "" {
		subID = DefaultSubject
	}
	p := &Paginator{
		client:    client,
		subID:     subID,
		pageSize:  DefaultPageSize,
		logger:    slog.Default(),
		pageCache: make(map[int]domain.LikedPage),
		hasMore:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SubjectID returns the subject this paginator lists
func (p *Paginator) SubjectID() string {
	return p.subID
}

// State returns a copy of the current state
func (p *Paginator) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]domain.Image, len(p.items))
	copy(items, p.items)
	return State{
		Items:      items,
		Page:       p.page,
		Loading:    p.loading,
		Err:        p.lastErr,
		HasMore:    p.hasMore,
		TotalCount: p.totalCount,
	}
}

// Load shows page 0, from the page cache when present. It is a no-op
// while another load is in flight.
func (p *Paginator) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	if cached, ok := p.pageCache[0]; ok {
		p.items = append([]domain.Image(nil), cached.Images...)
		p.applyCountsLocked(0, cached)
		p.mu.Unlock()
		p.metrics.PageApplied("cache")
		p.logger.Debug("liked page from cache", "page", 0)
		return nil
	}
	gen := p.beginLocked()
	p.mu.Unlock()

	return p.fetch(ctx, gen, 0, true)
}

// Refresh clears the page cache and the client's vote cache for the
// subject, then replaces the displayed items with page 0. A refresh
// supersedes any load still in flight.
func (p *Paginator) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.generation++
	p.pageCache = make(map[int]domain.LikedPage)
	gen := p.beginLocked()
	p.mu.Unlock()

	p.client.InvalidateVotes(p.subID)
	p.logger.Debug("refreshing liked cats", "subID", p.subID)

	return p.fetch(ctx, gen, 0, true)
}

// Refetch clears the displayed items and pagination state, then refreshes
func (p *Paginator) Refetch(ctx context.Context) error {
	p.mu.Lock()
	p.items = nil
	p.page = 0
	p.hasMore = true
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// LoadMore appends the next page. It returns false without doing anything
// when a load is in flight or no further pages exist.
func (p *Paginator) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loading || !p.hasMore {
		p.mu.Unlock()
		return false, nil
	}

	next := p.page + 1
	if cached, ok := p.pageCache[next]; ok {
		p.items = append(p.items, cached.Images...)
		p.applyCountsLocked(next, cached)
		p.mu.Unlock()
		p.metrics.PageApplied("cache")
		p.logger.Debug("liked page from cache", "page", next)
		return true, nil
	}

	gen := p.beginLocked()
	p.mu.Unlock()

	return true, p.fetch(ctx, gen, next, false)
}

// beginLocked marks a load in flight and returns its generation. Caller holds mu.
func (p *Paginator) beginLocked() uint64 {
	p.loading = true
	p.lastErr = ""
	return p.generation
}

// fetch resolves page outside the lock and applies the result if gen is still current
func (p *Paginator) fetch(ctx context.Context, gen uint64, page int, replace bool) error {
	result, err := ResolvePage(ctx, p.client, p.subID, page, p.pageSize, p.logger)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.logger.Debug("discarding stale liked page", "page", page, "generation", gen, "current", p.generation)
		return nil
	}
	p.loading = false

	if err != nil {
		fe := domain.NewFetchError(domain.MsgLikedImages, err)
		p.lastErr = fe.Error()
		p.logger.Error("failed to fetch liked cats", "error", err, "page", page, "subID", p.subID)
		return fe
	}

	lp := result.LikedPage()
	if len(lp.Unavailable) > 0 {
		p.logger.Warn("dropped unavailable liked images", "page", page, "imageIDs", lp.Unavailable)
	}

	p.pageCache[page] = lp
	if replace {
		p.items = append([]domain.Image(nil), lp.Images...)
	} else {
		p.items = append(p.items, lp.Images...)
	}
	p.applyCountsLocked(page, lp)
	p.metrics.PageApplied("network")
	return nil
}

func (p *Paginator) applyCountsLocked(page int, lp domain.LikedPage) {
	p.page = page
	p.hasMore = lp.HasMore
	p.totalCount = lp.TotalCount
}
