package event

// Source identifies the upstream provider an event came from
type Source string

const (
	SourceTicketmaster Source = "ticketmaster"
	SourceSeatgeek     Source = "seatgeek"
	SourceWeb          Source = "web"
)

// EventType is the unified category taxonomy across all providers
type EventType string

const (
	TypeMusic   EventType = "music"
	TypeSports  EventType = "sports"
	TypeTheatre EventType = "theatre"
	TypeMusical EventType = "musical"
	TypeComedy  EventType = "comedy"
	TypeFamily  EventType = "family"
	TypeFilm    EventType = "film"
	TypeOther   EventType = "other"
)

// DateStatus indicates how firm an event's date and time are
type DateStatus string

const (
	DateConfirmed DateStatus = "confirmed"
	DateTBD       DateStatus = "tbd"
	DateTBA       DateStatus = "tba"
)

// Venue is the place an event happens. Latitude and longitude are
// required; adapters drop records they cannot locate.
type Venue struct {
	Name       string  `json:"name"`
	Address    *string `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode *string `json:"postalCode"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// PriceRange is the advertised ticket price span. Either bound may be
// absent when the provider only reports one.
type PriceRange struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
}

// Image is one variant of an event's artwork
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Event is the canonical, source-agnostic representation of one event
// occurrence. Records are immutable value objects built fresh per
// request by the source adapters; nothing downstream mutates them.
type Event struct {
	ID       string `json:"id"`
	Source   Source `json:"source"`
	SourceID string `json:"sourceId"`

	Name        string    `json:"name"`
	Description *string   `json:"description"`
	EventType   EventType `json:"eventType"`
	Genre       *string   `json:"genre"`
	SubGenre    *string   `json:"subGenre"`

	// StartDate is a calendar date in YYYY-MM-DD form and is always
	// present. StartTime is a local clock time (HH:MM:SS) when known.
	StartDate  string     `json:"startDate"`
	StartTime  *string    `json:"startTime"`
	EndDate    *string    `json:"endDate"`
	Timezone   *string    `json:"timezone"`
	DateStatus DateStatus `json:"dateStatus"`

	Venue Venue `json:"venue"`

	ImageURL *string `json:"imageUrl"`
	Images   []Image `json:"images"`

	PriceRange *PriceRange `json:"priceRange"`

	URL string `json:"url"`

	// Popularity is a source-defined relevance score, used only for
	// the relevance sort. Scales are not comparable across sources.
	Popularity *float64 `json:"popularity"`
}
