package domain

import (
	"context"
)

// BreedRepository provides breed reference data
type BreedRepository interface {
	// ListBreeds returns every breed the provider knows
	ListBreeds(ctx context.Context) ([]Breed, error)

	// SearchBreeds performs a provider-side name search
	SearchBreeds(ctx context.Context, query string) ([]Breed, error)
}

// ImageRepository provides image lookup and search
type ImageRepository interface {
	// SearchImages returns images matching the criteria
	SearchImages(ctx context.Context, criteria SearchCriteria) ([]Image, error)

	// GetImageByID returns a single image, ErrNotFound-caused FetchError if unknown
	GetImageByID(ctx context.Context, id string) (*Image, error)
}

// VoteRepository provides vote submission and (cached) listing
type VoteRepository interface {
	// SubmitVote records a vote and returns the server-assigned id.
	// The cached vote list for subID is invalidated.
	SubmitVote(ctx context.Context, imageID, subID string, value int) (int, error)

	// ListVotes returns every vote visible to the caller, filtered by
	// subject when subID is non-empty. Served from cache within the TTL.
	ListVotes(ctx context.Context, subID string) ([]Vote, error)

	// InvalidateVotes drops the cached vote list for subID
	InvalidateVotes(subID string)
}

// FavoriteRepository is pass-through CRUD for favorites
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, imageID, subID string) (int, error)
	ListFavorites(ctx context.Context, subID string) ([]Favorite, error)
	RemoveFavorite(ctx context.Context, id int) error
}

// CatRepository combines every remote operation the app consumes
type CatRepository interface {
	BreedRepository
	ImageRepository
	VoteRepository
	FavoriteRepository

	// GetLikedImages returns one page of images the subject has liked
	GetLikedImages(ctx context.Context, subID string, page, pageSize int) (LikedPage, error)
}
