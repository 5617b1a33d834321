package domain

import (
	"fmt"
	"time"
)

// Image is a cat picture as returned by the provider. Immutable once fetched.
type Image struct {
	ID     string
	URL    string
	Width  int
	Height int
	Breeds []Breed // Empty when the provider has no breed data for the image
}

// PrimaryBreed returns the first breed attached to the image, if any
func (i Image) PrimaryBreed() (Breed, bool) {
	if len(i.Breeds) == 0 {
		return Breed{}, false
	}
	return i.Breeds[0], true
}

// Dimensions returns "WxH" for display
func (i Image) Dimensions() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// Weight holds the provider's weight ranges as display strings
type Weight struct {
	Imperial string
	Metric   string
}

// Trait is a named score on the provider's 0-5 scale
type Trait struct {
	Name  string
	Score int
}

// Breed describes a cat breed. Trait scores are zero when the provider omits them.
type Breed struct {
	ID               string
	Name             string
	Origin           string
	Temperament      string
	Description      string
	LifeSpan         string
	Weight           Weight
	ReferenceImageID string

	Adaptability     int
	AffectionLevel   int
	ChildFriendly    int
	DogFriendly      int
	EnergyLevel      int
	Grooming         int
	HealthIssues     int
	Intelligence     int
	SheddingLevel    int
	SocialNeeds      int
	StrangerFriendly int
	Vocalisation     int
}

// MaxTraitScore is the top of the provider's trait scale
const MaxTraitScore = 5

// Traits returns the breed's scored traits in display order.
// Traits the provider left unscored are omitted.
func (b Breed) Traits() []Trait {
	all := []Trait{
		{"Adaptability", b.Adaptability},
		{"Affection", b.AffectionLevel},
		{"Child friendly", b.ChildFriendly},
		{"Dog friendly", b.DogFriendly},
		{"Energy", b.EnergyLevel},
		{"Grooming", b.Grooming},
		{"Health issues", b.HealthIssues},
		{"Intelligence", b.Intelligence},
		{"Shedding", b.SheddingLevel},
		{"Social needs", b.SocialNeeds},
		{"Stranger friendly", b.StrangerFriendly},
		{"Vocalisation", b.Vocalisation},
	}
	traits := make([]Trait, 0, len(all))
	for _, t := range all {
		if t.Score > 0 {
			traits = append(traits, t)
		}
	}
	return traits
}

// Vote is a server-side like/dislike record. Never mutated after creation.
type Vote struct {
	ID        int
	ImageID   string
	Value     int // > 0 means like
	SubID     string
	CreatedAt time.Time
}

// IsLike reports whether the vote counts as a like
func (v Vote) IsLike() bool {
	return v.Value > 0
}

// Vote values submitted by the swipe deck
const (
	VoteLike    = 1
	VoteDislike = -1
)

// FavoriteImage is the abbreviated image embedded in a favorite
type FavoriteImage struct {
	ID  string
	URL string
}

// Favorite is a bookmarked image for a subject
type Favorite struct {
	ID        int
	ImageID   string
	SubID     string
	CreatedAt time.Time
	Image     FavoriteImage
}

// LikedPage is one window of the liked-images sequence. Derived, never persisted.
type LikedPage struct {
	Images     []Image
	HasMore    bool
	TotalCount int // Count of liked votes, independent of resolution failures

	// Unavailable lists image ids whose lookup failed and were dropped
	Unavailable []string
}

// Card pairs an image with the breed shown on the swipe deck
type Card struct {
	Image Image
	Breed *Breed // nil when no breed could be associated
}

// BreedName returns the card's breed name or a placeholder
func (c Card) BreedName() string {
	if c.Breed == nil {
		return "Unknown breed"
	}
	return c.Breed.Name
}
