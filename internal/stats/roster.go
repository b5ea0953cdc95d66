package stats

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mmpstats/internal/models"
)

// AppearanceCounts counts, for every person id, the events they appeared in
// as host or cast across all events, canonical or not.
func AppearanceCounts(ds *models.Dataset) map[int]int {
	counts := make(map[int]int)

	for _, e := range ds.Events {
		for _, id := range e.Participants() {
			counts[id]++
		}
	}

	return counts
}

// Roster lists every known person with their appearance count, sorted by
// name under the collation rules of lang. People with no appearances are
// included with a count of zero.
func Roster(ds *models.Dataset, lang language.Tag) []models.RosterEntry {
	counts := AppearanceCounts(ds)

	roster := make([]models.RosterEntry, 0, len(ds.People))
	for _, p := range ds.People {
		roster = append(roster, models.RosterEntry{
			ID:          p.ID,
			Name:        p.Name,
			Appearances: counts[p.ID],
		})
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(lang)

	sort.SliceStable(roster, func(i, j int) bool {
		return col.CompareString(roster[i].Name, roster[j].Name) < 0
	})

	return roster
}
