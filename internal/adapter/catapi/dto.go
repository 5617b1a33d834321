package catapi

// breedDTO is a breed as returned by /breeds and embedded in images
type breedDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Origin           string    `json:"origin"`
	Temperament      string    `json:"temperament,omitempty"`
	Description      string    `json:"description,omitempty"`
	LifeSpan         string    `json:"life_span,omitempty"`
	Weight           weightDTO `json:"weight"`
	ReferenceImageID string    `json:"reference_image_id,omitempty"`

	Adaptability     int `json:"adaptability,omitempty"`
	AffectionLevel   int `json:"affection_level,omitempty"`
	ChildFriendly    int `json:"child_friendly,omitempty"`
	DogFriendly      int `json:"dog_friendly,omitempty"`
	EnergyLevel      int `json:"energy_level,omitempty"`
	Grooming         int `json:"grooming,omitempty"`
	HealthIssues     int `json:"health_issues,omitempty"`
	Intelligence     int `json:"intelligence,omitempty"`
	SheddingLevel    int `json:"shedding_level,omitempty"`
	SocialNeeds      int `json:"social_needs,omitempty"`
	StrangerFriendly int `json:"stranger_friendly,omitempty"`
	Vocalisation     int `json:"vocalisation,omitempty"`
}

type weightDTO struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

// imageDTO is an image from /images/search or /images/{id}
type imageDTO struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Breeds []breedDTO `json:"breeds,omitempty"`
}

// voteDTO is a vote from /votes
type voteDTO struct {
	ID        int    `json:"id"`
	ImageID   string `json:"image_id"`
	SubID     string `json:"sub_id,omitempty"`
	Value     int    `json:"value"`
	CreatedAt string `json:"created_at"`
}

// favoriteDTO is a favorite from /favourites
type favoriteDTO struct {
	ID        int    `json:"id"`
	ImageID   string `json:"image_id"`
	SubID     string `json:"sub_id,omitempty"`
	CreatedAt string `json:"created_at"`
	Image     struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"image"`
}

type voteRequestDTO struct {
	ImageID string `json:"image_id"`
	SubID   string `json:"sub_id,omitempty"`
	Value   int    `json:"value"`
}

type favoriteRequestDTO struct {
	ImageID string `json:"image_id"`
	SubID   string `json:"sub_id,omitempty"`
}

// createdDTO is the body returned by POST /votes and POST /favourites
type createdDTO struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}
