package models

// PlaceholderName is shown for a host, cast or location id with no matching record.
const PlaceholderName = "—"

// RankEntry is one line of a ranking: a host, participant or location with its tally.
type RankEntry struct {
	Name  string `json:"name"`
	Rank  string `json:"rank"`
	ID    int    `json:"id"`
	Count int    `json:"count"`
}

// Hall bundles the three rankings.
type Hall struct {
	Hosts        []RankEntry `json:"hosts"`
	Participants []RankEntry `json:"participants"`
	Locations    []RankEntry `json:"locations"`
}

// RosterEntry is one line of the alphabetical participant list.
type RosterEntry struct {
	Name        string `json:"name"`
	ID          int    `json:"id"`
	Appearances int    `json:"appearances"`
}

// Appearance is one event in a person's history.
type Appearance struct {
	Role    *string `json:"role"`
	Code    string  `json:"code"`
	Title   string  `json:"title"`
	Date    string  `json:"date"`
	EventID int     `json:"mmpId"`
	IsHost  bool    `json:"isHost"`
}

// Character is a role a person played.
type Character struct {
	Role       string `json:"role"`
	EventCode  string `json:"mmpCode"`
	EventTitle string `json:"mmpTitle"`
}

// PersonStats is the detail view of one person.
type PersonStats struct {
	Name             string       `json:"name"`
	Appearances      []Appearance `json:"appearances"`
	Characters       []Character  `json:"characters"`
	ID               int          `json:"id"`
	TotalAppearances int          `json:"totalAppearances"`
	TimesHosted      int          `json:"timesHosted"`
}

// CastMember is a cast entry joined with the person's name.
type CastMember struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	UserID int    `json:"userId"`
}

// MediaItem is one entry of an event gallery.
type MediaItem struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Media types.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// TimelineEntry is an event as shown in the chronological listing.
type TimelineEntry struct {
	Code         string       `json:"code"`
	Title        string       `json:"title"`
	Date         string       `json:"date"`
	LocationName string       `json:"locationName"`
	HostNames    []string     `json:"hostNames"`
	Cast         []CastMember `json:"cast"`
	Media        []MediaItem  `json:"media"`
	ID           int          `json:"id"`
	Canon        bool         `json:"canon"`
}
