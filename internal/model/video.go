package model

// Status describes where a video sits in its lifecycle.  Exactly one
// status applies at a time; the states are mutually exclusive.
type Status string

const (
	StatusLive      Status = "live"      // streaming right now
	StatusUpcoming  Status = "upcoming"  // announced, not yet watchable
	StatusAvailable Status = "available" // recorded and purchasable
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusLive, StatusUpcoming, StatusAvailable:
		return true
	}
	return false
}

// Video is a purchasable catalog entry.  The ID is assigned at creation and
// never changes; the YouTubeID is the external player reference and is
// independent of the catalog ID.
//
// Views, Purchases and Revenue are independently stored figures seeded from
// mock data.  Revenue is NOT derived from price times purchases and the
// purchase flow does not increment any of them; they exist so the admin
// dashboard has something to show.
type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	YouTubeID   string  `json:"youtube_id"`
	Thumbnail   string  `json:"thumbnail"`
	Price       float64 `json:"price"`
	Status      Status  `json:"status"`
	Views       uint64  `json:"views"`
	Purchases   uint64  `json:"purchases"`
	Revenue     float64 `json:"revenue"`
}
