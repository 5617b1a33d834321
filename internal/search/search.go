package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/mittens/internal/domain"
)

// BreedSource is the remote surface breed search needs
type BreedSource interface {
	ListBreeds(ctx context.Context) ([]domain.Breed, error)
	SearchBreeds(ctx context.Context, query string) ([]domain.Breed, error)
}

// Result is a ranked breed match
type Result struct {
	Breed          domain.Breed
	MatchedIndexes []int // Rune positions in the lowercase name, for highlighting
	Score          int   // Higher is better
	Remote         bool  // True when the provider's search produced the result
}

// BreedIndex implements sahilm/fuzzy.Source over breed names
type BreedIndex struct {
	breeds     []domain.Breed
	lowerNames []string
}

// NewBreedIndex builds an index with pre-computed lowercase names
func NewBreedIndex(breeds []domain.Breed) *BreedIndex {
	idx := &BreedIndex{
		breeds:     breeds,
		lowerNames: make([]string, len(breeds)),
	}
	for i, b := range breeds {
		idx.lowerNames[i] = strings.ToLower(b.Name)
	}
	return idx
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *BreedIndex) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of breeds (implements fuzzy.Source)
func (idx *BreedIndex) Len() int { return len(idx.breeds) }

// Find ranks the indexed breeds against query, best first
func (idx *BreedIndex) Find(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Breed:          idx.breeds[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Service searches breeds remotely, falling back to a local fuzzy index
type Service struct {
	source BreedSource
	logger *slog.Logger

	mu    sync.RWMutex
	index *BreedIndex
}

// NewService creates a new breed search service
func NewService(source BreedSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source: source,
		logger: logger,
		index:  NewBreedIndex(nil),
	}
}

// SetBreeds replaces the local index, e.g. with the list the deck already loaded
func (s *Service) SetBreeds(breeds []domain.Breed) {
	sorted := append([]domain.Breed(nil), breeds...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	s.mu.Lock()
	s.index = NewBreedIndex(sorted)
	s.mu.Unlock()

	s.logger.Debug("indexed breeds", "count", len(sorted))
}

// Breeds returns every indexed breed in name order
func (s *Service) Breeds() []domain.Breed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Breed(nil), s.index.breeds...)
}

// EnsureIndex loads the breed list into the local index if it is empty
func (s *Service) EnsureIndex(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.index.Len() > 0
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	breeds, err := s.source.ListBreeds(ctx)
	if err != nil {
		return err
	}
	s.SetBreeds(breeds)
	return nil
}

// Search asks the provider first; when that fails the local index is
// ranked instead. An empty query lists every indexed breed.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		if err := s.EnsureIndex(ctx); err != nil {
			return nil, err
		}
		breeds := s.Breeds()
		results := make([]Result, len(breeds))
		for i, b := range breeds {
			results[i] = Result{Breed: b}
		}
		return results, nil
	}

	s.logger.Debug("searching breeds", "query", query)

	breeds, err := s.source.SearchBreeds(ctx, query)
	if err != nil {
		s.logger.Warn("breed search failed, falling back to local", "query", query, "error", err)
		if ierr := s.EnsureIndex(ctx); ierr != nil {
			return nil, err
		}
		return s.FilterLocal(query), nil
	}

	results := rankRemote(query, breeds)
	s.logger.Debug("breed search complete", "query", query, "results", len(results))
	return results, nil
}

// FilterLocal ranks the local index without touching the network
func (s *Service) FilterLocal(query string) []Result {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	return idx.Find(query)
}

// rankRemote keeps the provider's result set but orders it by local fuzzy
// score. Breeds the provider matched on something other than the name keep
// their relative order after the name matches.
func rankRemote(query string, breeds []domain.Breed) []Result {
	idx := NewBreedIndex(breeds)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	matched := make(map[int]bool, len(matches))
	results := make([]Result, 0, len(breeds))
	for _, m := range matches {
		matched[m.Index] = true
		results = append(results, Result{
			Breed:          breeds[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
			Remote:         true,
		})
	}
	for i, b := range breeds {
		if !matched[i] {
			results = append(results, Result{Breed: b, Remote: true})
		}
	}
	return results
}

// FilterByTemperament keeps breeds whose temperament fuzzily contains term,
// case-insensitively. An empty term keeps everything.
func FilterByTemperament(breeds []domain.Breed, term string) []domain.Breed {
	term = strings.TrimSpace(term)
	if term == "" {
		return breeds
	}
	var out []domain.Breed
	for _, b := range breeds {
		if lfuzzy.MatchFold(term, b.Temperament) {
			out = append(out, b)
		}
	}
	return out
}
