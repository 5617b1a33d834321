package catapi

import (
	"time"

	"github.com/mmcdole/mittens/internal/domain"
)

func mapBreeds(dtos []breedDTO) []domain.Breed {
	breeds := make([]domain.Breed, 0, len(dtos))
	for _, b := range dtos {
		breeds = append(breeds, mapBreed(b))
	}
	return breeds
}

func mapBreed(b breedDTO) domain.Breed {
	return domain.Breed{
		ID:               b.ID,
		Name:             b.Name,
		Origin:           b.Origin,
		Temperament:      b.Temperament,
		Description:      b.Description,
		LifeSpan:         b.LifeSpan,
		Weight:           domain.Weight{Imperial: b.Weight.Imperial, Metric: b.Weight.Metric},
		ReferenceImageID: b.ReferenceImageID,
		Adaptability:     b.Adaptability,
		AffectionLevel:   b.AffectionLevel,
		ChildFriendly:    b.ChildFriendly,
		DogFriendly:      b.DogFriendly,
		EnergyLevel:      b.EnergyLevel,
		Grooming:         b.Grooming,
		HealthIssues:     b.HealthIssues,
		Intelligence:     b.Intelligence,
		SheddingLevel:    b.SheddingLevel,
		SocialNeeds:      b.SocialNeeds,
		StrangerFriendly: b.StrangerFriendly,
		Vocalisation:     b.Vocalisation,
	}
}

func mapImages(dtos []imageDTO) []domain.Image {
	images := make([]domain.Image, 0, len(dtos))
	for _, i := range dtos {
		images = append(images, mapImage(i))
	}
	return images
}

func mapImage(i imageDTO) domain.Image {
	img := domain.Image{
		ID:     i.ID,
		URL:    i.URL,
		Width:  i.Width,
		Height: i.Height,
	}
	if len(i.Breeds) > 0 {
		img.Breeds = mapBreeds(i.Breeds)
	}
	return img
}

func mapVotes(dtos []voteDTO) []domain.Vote {
	votes := make([]domain.Vote, 0, len(dtos))
	for _, v := range dtos {
		votes = append(votes, domain.Vote{
			ID:        v.ID,
			ImageID:   v.ImageID,
			Value:     v.Value,
			SubID:     v.SubID,
			CreatedAt: parseTimestamp(v.CreatedAt),
		})
	}
	return votes
}

func mapFavorites(dtos []favoriteDTO) []domain.Favorite {
	favs := make([]domain.Favorite, 0, len(dtos))
	for _, f := range dtos {
		favs = append(favs, domain.Favorite{
			ID:        f.ID,
			ImageID:   f.ImageID,
			SubID:     f.SubID,
			CreatedAt: parseTimestamp(f.CreatedAt),
			Image:     domain.FavoriteImage{ID: f.Image.ID, URL: f.Image.URL},
		})
	}
	return favs
}

// parseTimestamp parses the provider's RFC3339 timestamps, zero on failure
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
