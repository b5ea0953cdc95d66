package normalizer

import (
	"slices"

	"mmpstats/internal/models"
	"mmpstats/pkg/utils"
)

// Transformer reconciles validated records. It never modifies its input.
type Transformer struct {
	strings *utils.StringHelper
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		strings: utils.NewStringHelper(),
	}
}

// TransformEvents unifies the two host fields into HostIDs and sets HostID to
// the primary host, so both fields agree afterwards.
func (t *Transformer) TransformEvents(events []models.Event) []models.Event {
	out := make([]models.Event, 0, len(events))

	for _, e := range events {
		e.Code = t.strings.NormalizeWhitespace(e.Code)
		e.Title = t.strings.NormalizeWhitespace(e.Title)

		hosts := slices.Clone(e.Hosts())
		e.HostIDs = hosts
		e.HostID = nil

		if len(hosts) > 0 {
			e.HostID = models.IntPtr(hosts[0])
		}

		e.Cast = slices.Clone(e.Cast)
		e.Media = slices.Clone(e.Media)

		out = append(out, e)
	}

	return out
}

// TransformPeople normalizes person names.
func (t *Transformer) TransformPeople(people []models.Person) []models.Person {
	out := make([]models.Person, 0, len(people))
	for _, p := range people {
		p.Name = t.strings.NormalizeWhitespace(p.Name)
		out = append(out, p)
	}

	return out
}

// TransformLocations normalizes location names.
func (t *Transformer) TransformLocations(locations []models.Location) []models.Location {
	out := make([]models.Location, 0, len(locations))
	for _, l := range locations {
		l.Name = t.strings.NormalizeWhitespace(l.Name)
		out = append(out, l)
	}

	return out
}
