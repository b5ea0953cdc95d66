package stats

import (
	"sort"
	"strconv"

	"mmpstats/internal/models"
)

// Fallback labels used on event cards.
const (
	UnknownHost     = "Unknown"
	UnknownLocation = "Unknown"
)

// GalleryFunc resolves the media gallery of an event.
type GalleryFunc func(e models.Event) []models.MediaItem

// Timeline lists all events, highest id first, with names resolved.
// gallery may be nil.
func Timeline(ds *models.Dataset, gallery GalleryFunc) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(ds.Events))

	for _, e := range ds.Events {
		entry := models.TimelineEntry{
			ID:           e.ID,
			Code:         e.Code,
			Title:        e.Title,
			Date:         e.Date,
			Canon:        e.Canon,
			LocationName: UnknownLocation,
			HostNames:    []string{},
			Cast:         []models.CastMember{},
			Media:        []models.MediaItem{},
		}

		if name, ok := ds.LocationName(e.LocationID); ok {
			entry.LocationName = name
		}

		for _, id := range e.Hosts() {
			name, ok := ds.PersonName(id)
			if !ok {
				name = UnknownHost
			}

			entry.HostNames = append(entry.HostNames, name)
		}

		for _, c := range e.Cast {
			if c.UserID == nil {
				continue
			}

			name, ok := ds.PersonName(*c.UserID)
			if !ok {
				name = "#" + strconv.Itoa(*c.UserID)
			}

			entry.Cast = append(entry.Cast, models.CastMember{UserID: *c.UserID, Name: name, Role: c.Role})
		}

		if gallery != nil {
			if items := gallery(e); items != nil {
				entry.Media = items
			}
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})

	return entries
}
