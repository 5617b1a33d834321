package likes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmcdole/mittens/internal/domain"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBoom = errors.New("boom")

// fakeClient serves a fixed vote list and an image table, counting calls
type fakeClient struct {
	mu sync.Mutex

	votes      []domain.Vote
	votesErr   error
	images     map[string]domain.Image
	failImages map[string]bool

	// block, when set, is received from before ListVotes returns
	block chan struct{}

	voteCalls   int
	imageCalls  []string
	invalidated []string
}

func newFakeClient(votes ...domain.Vote) *fakeClient {
	f := &fakeClient{
		votes:      votes,
		images:     make(map[string]domain.Image),
		failImages: make(map[string]bool),
	}
	for _, v := range votes {
		f.images[v.ImageID] = domain.Image{ID: v.ImageID, URL: "https://cdn.example/" + v.ImageID + ".jpg"}
	}
	return f
}

func (f *fakeClient) ListVotes(ctx context.Context, subID string) ([]domain.Vote, error) {
	f.mu.Lock()
	f.voteCalls++
	block := f.block
	votes := append([]domain.Vote(nil), f.votes...)
	err := f.votesErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, &domain.FetchError{Op: domain.MsgListVotes, Err: err}
	}
	return votes, nil
}

func (f *fakeClient) GetImageByID(ctx context.Context, id string) (*domain.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls = append(f.imageCalls, id)
	if f.failImages[id] {
		return nil, &domain.FetchError{Op: domain.MsgGetImage, Err: domain.ErrNotFound}
	}
	img, ok := f.images[id]
	if !ok {
		return nil, &domain.FetchError{Op: domain.MsgGetImage, Err: domain.ErrNotFound}
	}
	return &img, nil
}

func (f *fakeClient) InvalidateVotes(subID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, subID)
}

func (f *fakeClient) setVotes(votes ...domain.Vote) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.votes = votes
	for _, v := range votes {
		if _, ok := f.images[v.ImageID]; !ok {
			f.images[v.ImageID] = domain.Image{ID: v.ImageID}
		}
	}
}

func (f *fakeClient) calls() (votes int, images []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voteCalls, append([]string(nil), f.imageCalls...)
}

func like(id string) domain.Vote    { return domain.Vote{ImageID: id, Value: 1} }
func dislike(id string) domain.Vote { return domain.Vote{ImageID: id, Value: -1} }

func imageIDs(images []domain.Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	return ids
}
