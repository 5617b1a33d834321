package domain

// Image sizes accepted by the provider
const (
	SizeSmall = "small"
	SizeMed   = "med"
	SizeFull  = "full"
)

// SearchCriteria filters an image search. Zero values are omitted from the query.
type SearchCriteria struct {
	Limit     int
	Page      int
	Order     string // "RANDOM", "ASC", "DESC"
	HasBreeds bool
	MimeTypes string // e.g. "jpg" or "jpg,png"
	Size      string
	Format    string
	BreedIDs  string // comma separated
}

// DefaultCardCriteria returns the criteria the swipe deck uses for a batch
func DefaultCardCriteria(limit int) SearchCriteria {
	return SearchCriteria{
		Limit:     limit,
		Page:      0,
		Order:     "RANDOM",
		HasBreeds: true,
		MimeTypes: "jpg",
		Size:      SizeMed,
		Format:    "json",
	}
}
