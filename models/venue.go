package models

// DefaultVenueRating is reported for venues that have no rating yet.
const DefaultVenueRating = 4.5

// Venue is read from the catalog table maintained outside this service.
type Venue struct {
	ID          int64    `gorm:"primaryKey" json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Capacity    int      `json:"capacity"`
	Price       int64    `json:"price"`
	Type        string   `json:"type"`
	ImageURL    string   `gorm:"column:image_url" json:"image"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
}

func (Venue) TableName() string {
	return "venues"
}

// EffectiveRating returns the stored rating or DefaultVenueRating.
func (v *Venue) EffectiveRating() float64 {
	if v.Rating == nil || *v.Rating == 0 {
		return DefaultVenueRating
	}
	return *v.Rating
}

// VenueFilter narrows GET /venues. Zero values mean no filter.
type VenueFilter struct {
	City        string
	Type        string
	MinCapacity int
}

// Catalog UI sentinels meaning "no filter".
const (
	AllCities = "Все города"
	AllTypes  = "Все типы"
)

// Normalize clears sentinel values.
func (f VenueFilter) Normalize() VenueFilter {
	if f.City == AllCities {
		f.City = ""
	}
	if f.Type == AllTypes {
		f.Type = ""
	}
	if f.MinCapacity < 0 {
		f.MinCapacity = 0
	}
	return f
}

type VenueResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Capacity    int     `json:"capacity"`
	Price       int64   `json:"price"`
	Type        string  `json:"type"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

func NewVenueResponse(v *Venue) VenueResponse {
	return VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		City:        v.City,
		Capacity:    v.Capacity,
		Price:       v.Price,
		Type:        v.Type,
		Image:       v.ImageURL,
		Rating:      v.EffectiveRating(),
		Description: v.Description,
	}
}
