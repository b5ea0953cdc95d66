package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"mmpstats/internal/models"
)

// ErrPersonNotFound is returned when the requested person id is not in the people collection.
var ErrPersonNotFound = errors.New("person not found")

const dateLayout = "2006-01-02"

// PersonHistory collects every event personID hosted or was cast in.
// Appearances are ordered most recent first; events on the same date keep
// their collection order.
func PersonHistory(ds *models.Dataset, personID int) (*models.PersonStats, error) {
	name, ok := ds.PersonName(personID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrPersonNotFound, personID)
	}

	appearances := []models.Appearance{}
	characters := []models.Character{}
	timesHosted := 0

	for _, e := range ds.Events {
		isHost := e.HasHost(personID)
		entry, inCast := e.CastEntryFor(personID)

		if !isHost && !inCast {
			continue
		}

		var role *string
		if inCast && entry.Role != "" {
			r := entry.Role
			role = &r
		}

		appearances = append(appearances, models.Appearance{
			EventID: e.ID,
			Code:    e.Code,
			Title:   e.Title,
			Date:    e.Date,
			Role:    role,
			IsHost:  isHost,
		})

		if isHost {
			timesHosted++
		}

		if role != nil {
			characters = append(characters, models.Character{
				Role:       *role,
				EventCode:  e.Code,
				EventTitle: e.Title,
			})
		}
	}

	sortByDateDesc(appearances)

	return &models.PersonStats{
		ID:               personID,
		Name:             name,
		TotalAppearances: len(appearances),
		TimesHosted:      timesHosted,
		Appearances:      appearances,
		Characters:       characters,
	}, nil
}

// sortByDateDesc orders appearances newest first. Unparseable dates go last.
func sortByDateDesc(appearances []models.Appearance) {
	dates := make(map[int]time.Time, len(appearances))
	for _, a := range appearances {
		if t, err := time.Parse(dateLayout, a.Date); err == nil {
			dates[a.EventID] = t
		}
	}

	sort.SliceStable(appearances, func(i, j int) bool {
		di, okI := dates[appearances[i].EventID]
		dj, okJ := dates[appearances[j].EventID]

		switch {
		case okI && okJ:
			return di.After(dj)
		case okI:
			return true
		default:
			return false
		}
	})
}
