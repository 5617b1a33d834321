package deck

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/mmcdole/mittens/internal/domain"
)

const (
	DefaultBatchSize       = 20
	DefaultRefillThreshold = 5
)

// ErrEmpty is returned by swipe actions when no card is showing
var ErrEmpty = errors.New("no cards left")

// Client is the remote surface the deck needs
type Client interface {
	ListBreeds(ctx context.Context) ([]domain.Breed, error)
	SearchImages(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Image, error)
	SubmitVote(ctx context.Context, imageID, subID string, value int) (int, error)
	AddFavorite(ctx context.Context, imageID, subID string) (int, error)
}

// Config holds deck tuning
type Config struct {
	SubID           string
	BatchSize       int
	RefillThreshold int // Refill once this many cards or fewer remain
	VoteOnDislike   bool
}

// Deck is the swipe queue. Cards are resolved against the breed list once
// at fill time and never re-resolved.
type Deck struct {
	client Client
	cfg    Config
	logger *slog.Logger
	intn   func(n int) int

	mu       sync.Mutex
	breeds   []domain.Breed
	loaded   bool
	queue    []domain.Card
	seen     map[string]bool // Image ids ever queued
	liked    []string
	disliked []string
}

// Option configures a Deck
type Option func(*Deck)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deck) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRand replaces the random breed picker, mainly for tests
func WithRand(intn func(n int) int) Option {
	return func(d *Deck) {
		if intn != nil {
			d.intn = intn
		}
	}
}

// New creates a deck. A non-positive batch size or negative threshold
// falls back to the default.
func New(client Client, cfg Config, opts ...Option) *Deck {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.RefillThreshold < 0 {
		cfg.RefillThreshold = DefaultRefillThreshold
	}
	d := &Deck{
		client: client,
		cfg:    cfg,
		logger: slog.Default(),
		intn:   rand.IntN,
		seen:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LoadBreeds fetches the breed list once. Later calls are no-ops.
func (d *Deck) LoadBreeds(ctx context.Context) error {
	d.mu.Lock()
	loaded := d.loaded
	d.mu.Unlock()
	if loaded {
		return nil
	}

	breeds, err := d.client.ListBreeds(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.breeds = breeds
	d.loaded = true
	d.mu.Unlock()

	d.logger.Debug("breeds loaded", "count", len(breeds))
	return nil
}

// Breeds returns the loaded breed list
func (d *Deck) Breeds() []domain.Breed {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Breed(nil), d.breeds...)
}

// Fill fetches one batch of images and appends them as cards.
// Images already queued earlier in the session are skipped.
func (d *Deck) Fill(ctx context.Context) (int, error) {
	images, err := d.client.SearchImages(ctx, domain.DefaultCardCriteria(d.cfg.BatchSize))
	if err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	added := 0
	for _, img := range images {
		if d.seen[img.ID] {
			continue
		}
		d.seen[img.ID] = true
		d.queue = append(d.queue, domain.Card{Image: img, Breed: d.resolveBreedLocked(img)})
		added++
	}

	d.logger.Debug("deck filled", "fetched", len(images), "added", added, "queued", len(d.queue))
	return added, nil
}

// resolveBreedLocked picks the breed shown for img: the image's own breed,
// then the breed whose reference image is img, then a random known breed.
func (d *Deck) resolveBreedLocked(img domain.Image) *domain.Breed {
	if b, ok := img.PrimaryBreed(); ok {
		return &b
	}
	for i := range d.breeds {
		if d.breeds[i].ReferenceImageID == img.ID {
			b := d.breeds[i]
			return &b
		}
	}
	if len(d.breeds) == 0 {
		return nil
	}
	b := d.breeds[d.intn(len(d.breeds))]
	return &b
}

// Current returns the card on top of the deck
func (d *Deck) Current() (domain.Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return domain.Card{}, false
	}
	return d.queue[0], true
}

// Remaining returns the number of queued cards, including the current one
func (d *Deck) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// NeedsRefill reports whether the queue is at or below the refill threshold
func (d *Deck) NeedsRefill() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue) <= d.cfg.RefillThreshold
}

// Next drops the current card and refills when the queue runs low
func (d *Deck) Next(ctx context.Context) error {
	d.mu.Lock()
	if len(d.queue) > 0 {
		d.queue = d.queue[1:]
	}
	d.mu.Unlock()
	return d.refillIfLow(ctx)
}

func (d *Deck) refillIfLow(ctx context.Context) error {
	if !d.NeedsRefill() {
		return nil
	}
	if _, err := d.Fill(ctx); err != nil {
		d.logger.Warn("deck refill failed", "error", err)
		return err
	}
	return nil
}

// Like votes +1 on the current card and adds it to favorites. Nothing is
// recorded and the card stays on top unless the vote succeeds.
func (d *Deck) Like(ctx context.Context) domain.ActionResult {
	card, ok := d.Current()
	if !ok {
		return domain.ActionResult{Err: ErrEmpty}
	}
	result := domain.ActionResult{ImageID: card.Image.ID, Value: domain.VoteLike}

	voteID, err := d.client.SubmitVote(ctx, card.Image.ID, d.cfg.SubID, domain.VoteLike)
	if err != nil {
		d.logger.Error("like failed", "imageID", card.Image.ID, "error", err)
		result.Err = err
		return result
	}
	result.Voted = true
	result.VoteID = voteID

	favID, err := d.client.AddFavorite(ctx, card.Image.ID, d.cfg.SubID)
	if err != nil {
		d.logger.Warn("favorite failed after like", "imageID", card.Image.ID, "error", err)
		result.FavoriteErr = err
	} else {
		result.Favorited = true
		result.FavoriteID = favID
	}

	d.mu.Lock()
	d.liked = append(d.liked, card.Image.ID)
	d.popLocked(card.Image.ID)
	d.mu.Unlock()

	d.logger.Info("cat liked", "imageID", card.Image.ID, "voteID", voteID)
	result.RefillErr = d.refillIfLow(ctx)
	return result
}

// Dislike records the current card as disliked and advances. A -1 vote
// is submitted only when VoteOnDislike is set; if that vote fails nothing
// is recorded.
func (d *Deck) Dislike(ctx context.Context) domain.ActionResult {
	card, ok := d.Current()
	if !ok {
		return domain.ActionResult{Err: ErrEmpty}
	}
	result := domain.ActionResult{ImageID: card.Image.ID, Value: domain.VoteDislike}

	if d.cfg.VoteOnDislike {
		voteID, err := d.client.SubmitVote(ctx, card.Image.ID, d.cfg.SubID, domain.VoteDislike)
		if err != nil {
			d.logger.Error("dislike vote failed", "imageID", card.Image.ID, "error", err)
			result.Err = err
			return result
		}
		result.Voted = true
		result.VoteID = voteID
	}

	d.mu.Lock()
	d.disliked = append(d.disliked, card.Image.ID)
	d.popLocked(card.Image.ID)
	d.mu.Unlock()

	result.RefillErr = d.refillIfLow(ctx)
	return result
}

// popLocked removes the top card only if it is still id, so two actions
// racing on the same card advance the deck once.
func (d *Deck) popLocked(id string) {
	if len(d.queue) > 0 && d.queue[0].Image.ID == id {
		d.queue = d.queue[1:]
	}
}

// Liked returns the image ids liked this session, oldest first
func (d *Deck) Liked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.liked...)
}

// Disliked returns the image ids disliked this session, oldest first
func (d *Deck) Disliked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.disliked...)
}
