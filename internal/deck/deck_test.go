package deck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mmcdole/mittens/internal/adapter"
	"github.com/mmcdole/mittens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type vote struct {
	imageID string
	subID   string
	value   int
}

type fakeClient struct {
	mu sync.Mutex

	breeds    []domain.Breed
	breedsErr error
	batches   [][]domain.Image // Served in order, then empty
	imagesErr error
	voteErr   error
	favErr    error

	breedCalls int
	criteria   []domain.SearchCriteria
	votes      []vote
	favorites  []string
}

func (f *fakeClient) ListBreeds(ctx context.Context) ([]domain.Breed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.breedCalls++
	return f.breeds, f.breedsErr
}

func (f *fakeClient) SearchImages(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.criteria = append(f.criteria, criteria)
	if f.imagesErr != nil {
		return nil, f.imagesErr
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeClient) SubmitVote(ctx context.Context, imageID, subID string, value int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voteErr != nil {
		return 0, f.voteErr
	}
	f.votes = append(f.votes, vote{imageID, subID, value})
	return 100 + len(f.votes), nil
}

func (f *fakeClient) AddFavorite(ctx context.Context, imageID, subID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.favErr != nil {
		return 0, f.favErr
	}
	f.favorites = append(f.favorites, imageID)
	return 200 + len(f.favorites), nil
}

func images(ids ...string) []domain.Image {
	out := make([]domain.Image, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Image{ID: id, URL: "https://cdn.example/" + id + ".jpg"})
	}
	return out
}

func numbered(prefix string, n int) []domain.Image {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return images(ids...)
}

func newDeck(t *testing.T, client *fakeClient, cfg Config) *Deck {
	t.Helper()
	return New(client, cfg, WithLogger(adapter.NullLogger()), WithRand(func(n int) int { return n - 1 }))
}

func TestFillUsesCardCriteria(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}}
	d := newDeck(t, client, Config{BatchSize: 7})

	added, err := d.Fill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	require.Len(t, client.criteria, 1)
	assert.Equal(t, domain.DefaultCardCriteria(7), client.criteria[0])

	card, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "a", card.Image.ID)
}

func TestNewAppliesDefaults(t *testing.T) {
	client := &fakeClient{}
	d := New(client, Config{RefillThreshold: -1})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, client.criteria[0].Limit)
	assert.Equal(t, DefaultRefillThreshold, d.cfg.RefillThreshold)
}

func TestFillSkipsSeenImages(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b"), images("b", "c")}}
	d := newDeck(t, client, Config{})

	_, err := d.Fill(context.Background())
	require.NoError(t, err)
	added, err := d.Fill(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, added)
	assert.Equal(t, 3, d.Remaining())
}

func TestBreedResolution(t *testing.T) {
	own := domain.Breed{ID: "own", Name: "Own"}
	ref := domain.Breed{ID: "ref", Name: "Reference", ReferenceImageID: "r1"}
	other := domain.Breed{ID: "other", Name: "Other"}

	withBreed := domain.Image{ID: "x", Breeds: []domain.Breed{own}}
	byReference := domain.Image{ID: "r1"}
	random := domain.Image{ID: "z"}

	client := &fakeClient{
		breeds:  []domain.Breed{ref, other},
		batches: [][]domain.Image{{withBreed, byReference, random}},
	}
	d := newDeck(t, client, Config{})
	require.NoError(t, d.LoadBreeds(context.Background()))
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	var names []string
	for d.Remaining() > 0 {
		card, _ := d.Current()
		names = append(names, card.BreedName())
		d.mu.Lock()
		d.queue = d.queue[1:]
		d.mu.Unlock()
	}
	// The random picker is pinned to the last breed
	assert.Equal(t, []string{"Own", "Reference", "Other"}, names)
}

func TestBreedResolutionWithoutBreeds(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a")}}
	d := newDeck(t, client, Config{})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	card, ok := d.Current()
	require.True(t, ok)
	assert.Nil(t, card.Breed)
	assert.Equal(t, "Unknown breed", card.BreedName())
}

func TestLoadBreedsOnce(t *testing.T) {
	client := &fakeClient{breeds: []domain.Breed{{ID: "abys"}}}
	d := newDeck(t, client, Config{})

	require.NoError(t, d.LoadBreeds(context.Background()))
	require.NoError(t, d.LoadBreeds(context.Background()))
	assert.Equal(t, 1, client.breedCalls)
	assert.Len(t, d.Breeds(), 1)
}

func TestLoadBreedsFailureRetries(t *testing.T) {
	client := &fakeClient{breedsErr: errBoom}
	d := newDeck(t, client, Config{})

	require.ErrorIs(t, d.LoadBreeds(context.Background()), errBoom)
	client.breedsErr = nil
	require.NoError(t, d.LoadBreeds(context.Background()))
	assert.Equal(t, 2, client.breedCalls)
}

func TestLikeVotesAndFavorites(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}}
	d := newDeck(t, client, Config{SubID: "alice", RefillThreshold: 0})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	result := d.Like(context.Background())

	require.True(t, result.OK())
	assert.Equal(t, "a", result.ImageID)
	assert.True(t, result.Voted)
	assert.Equal(t, 101, result.VoteID)
	assert.True(t, result.Favorited)
	assert.Equal(t, 201, result.FavoriteID)
	assert.Equal(t, []vote{{"a", "alice", domain.VoteLike}}, client.votes)
	assert.Equal(t, []string{"a"}, d.Liked())

	card, _ := d.Current()
	assert.Equal(t, "b", card.Image.ID)
}

func TestLikeVoteFailureAppliesNothing(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}, voteErr: errBoom}
	d := newDeck(t, client, Config{})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	result := d.Like(context.Background())

	require.False(t, result.OK())
	assert.ErrorIs(t, result.Err, errBoom)
	assert.False(t, result.Voted)
	assert.Empty(t, client.favorites, "favorite is not attempted without a vote")
	assert.Empty(t, d.Liked())
	card, _ := d.Current()
	assert.Equal(t, "a", card.Image.ID)
}

func TestLikeFavoriteFailureKeepsLike(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}, favErr: errBoom}
	d := newDeck(t, client, Config{RefillThreshold: 0})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	result := d.Like(context.Background())

	require.True(t, result.OK())
	assert.True(t, result.Voted)
	assert.False(t, result.Favorited)
	assert.ErrorIs(t, result.FavoriteErr, errBoom)
	assert.Equal(t, []string{"a"}, d.Liked())
}

func TestDislikeWithoutVote(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}}
	d := newDeck(t, client, Config{RefillThreshold: 0})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	result := d.Dislike(context.Background())

	require.True(t, result.OK())
	assert.False(t, result.Voted)
	assert.Empty(t, client.votes)
	assert.Equal(t, []string{"a"}, d.Disliked())
	card, _ := d.Current()
	assert.Equal(t, "b", card.Image.ID)
}

func TestDislikeWithVote(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}}
	d := newDeck(t, client, Config{SubID: "alice", RefillThreshold: 0, VoteOnDislike: true})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	result := d.Dislike(context.Background())

	require.True(t, result.OK())
	assert.True(t, result.Voted)
	assert.Equal(t, []vote{{"a", "alice", domain.VoteDislike}}, client.votes)
}

func TestDislikeVoteFailureAppliesNothing(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a")}, voteErr: errBoom}
	d := newDeck(t, client, Config{VoteOnDislike: true})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	result := d.Dislike(context.Background())

	require.ErrorIs(t, result.Err, errBoom)
	assert.Empty(t, d.Disliked())
	assert.Equal(t, 1, d.Remaining())
}

func TestActionsOnEmptyDeck(t *testing.T) {
	d := newDeck(t, &fakeClient{}, Config{})

	assert.ErrorIs(t, d.Like(context.Background()).Err, ErrEmpty)
	assert.ErrorIs(t, d.Dislike(context.Background()).Err, ErrEmpty)
}

func TestRefillWhenQueueRunsLow(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{numbered("a", 7), numbered("b", 20)}}
	d := newDeck(t, client, Config{BatchSize: 20, RefillThreshold: 5})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	// 7 -> 6 cards: above the threshold, no fetch
	require.NoError(t, d.Next(context.Background()))
	assert.Len(t, client.criteria, 1)
	assert.Equal(t, 6, d.Remaining())

	// 6 -> 5 cards: at the threshold, refill
	require.NoError(t, d.Next(context.Background()))
	assert.Len(t, client.criteria, 2)
	assert.Equal(t, 25, d.Remaining())
}

func TestRefillFailureKeepsQueue(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}}
	d := newDeck(t, client, Config{RefillThreshold: 5})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	client.imagesErr = errBoom
	require.ErrorIs(t, d.Next(context.Background()), errBoom)
	assert.Equal(t, 1, d.Remaining())

	// A like still succeeds when the refill behind it fails
	result := d.Like(context.Background())
	assert.True(t, result.OK())
	assert.ErrorIs(t, result.RefillErr, errBoom)
	assert.Equal(t, 0, d.Remaining())
}

func TestDislikeReportsRefillFailure(t *testing.T) {
	client := &fakeClient{batches: [][]domain.Image{images("a", "b")}}
	d := newDeck(t, client, Config{RefillThreshold: 5})
	_, err := d.Fill(context.Background())
	require.NoError(t, err)

	client.imagesErr = errBoom
	result := d.Dislike(context.Background())
	assert.True(t, result.OK())
	assert.ErrorIs(t, result.RefillErr, errBoom)
	assert.Equal(t, []string{"a"}, d.Disliked())

	client.imagesErr = nil
	client.batches = [][]domain.Image{images("c")}
	result = d.Dislike(context.Background())
	assert.True(t, result.OK())
	assert.NoError(t, result.RefillErr)
}
