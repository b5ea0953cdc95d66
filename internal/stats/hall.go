package stats

import (
	"slices"
	"sort"

	"mmpstats/internal/models"
)

type tally struct {
	id    int
	count int
}

// counter accumulates per-id counts.
type counter map[int]int

// sorted returns the tallies by count descending, ties in ascending id order.
func (c counter) sorted() []tally {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	out := make([]tally, 0, len(ids))
	for _, id := range ids {
		out = append(out, tally{id: id, count: c[id]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})

	return out
}

func rankTallies(tallies []tally, name func(int) string) []models.RankEntry {
	ranked := AssignRanks(tallies, func(t tally) int { return t.count })

	entries := make([]models.RankEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, models.RankEntry{
			ID:    r.Item.id,
			Name:  name(r.Item.id),
			Count: r.Item.count,
			Rank:  r.Rank,
		})
	}

	return entries
}

func personLabel(ds *models.Dataset) func(int) string {
	return func(id int) string {
		if name, ok := ds.PersonName(id); ok {
			return name
		}

		return models.PlaceholderName
	}
}

func locationLabel(ds *models.Dataset) func(int) string {
	return func(id int) string {
		if name, ok := ds.LocationName(id); ok {
			return name
		}

		return models.PlaceholderName
	}
}

// HostCounts ranks people by the number of events they hosted.
// Every event counts once for its primary host; the canon flag is ignored.
func HostCounts(ds *models.Dataset) []models.RankEntry {
	c := counter{}

	for _, e := range ds.Events {
		if host, ok := e.PrimaryHost(); ok {
			c[host]++
		}
	}

	return rankTallies(c.sorted(), personLabel(ds))
}

// ParticipantCounts ranks people by the number of canonical events they
// appeared in, as host or cast. A person counts at most once per event.
func ParticipantCounts(ds *models.Dataset) []models.RankEntry {
	c := counter{}

	for _, e := range ds.Events {
		if !e.Canon {
			continue
		}

		for _, id := range e.Participants() {
			c[id]++
		}
	}

	return rankTallies(c.sorted(), personLabel(ds))
}

// LocationCounts ranks locations by the number of canonical events held there.
func LocationCounts(ds *models.Dataset) []models.RankEntry {
	c := counter{}

	for _, e := range ds.Events {
		if !e.Canon {
			continue
		}

		c[e.LocationID]++
	}

	return rankTallies(c.sorted(), locationLabel(ds))
}

// ComputeHall builds the three rankings.
func ComputeHall(ds *models.Dataset) models.Hall {
	return models.Hall{
		Hosts:        HostCounts(ds),
		Participants: ParticipantCounts(ds),
		Locations:    LocationCounts(ds),
	}
}
