package stats

import "mmpstats/internal/models"

// Kinds of event references.
const (
	RefHost     = "host"
	RefCast     = "cast"
	RefLocation = "location"
)

// Reference is an id used by an event that no collection defines.
type Reference struct {
	Kind    string `json:"kind"`
	EventID int    `json:"eventId"`
	ID      int    `json:"id"`
}

// UnresolvedReferences lists the host, cast and location ids that resolve to
// nothing, in event order. A location id of zero means "no location".
func UnresolvedReferences(ds *models.Dataset) []Reference {
	var refs []Reference

	for _, e := range ds.Events {
		for _, id := range e.Hosts() {
			if _, ok := ds.PersonName(id); !ok {
				refs = append(refs, Reference{Kind: RefHost, EventID: e.ID, ID: id})
			}
		}

		for _, c := range e.Cast {
			if c.UserID == nil {
				continue
			}

			if _, ok := ds.PersonName(*c.UserID); !ok {
				refs = append(refs, Reference{Kind: RefCast, EventID: e.ID, ID: *c.UserID})
			}
		}

		if e.LocationID != 0 {
			if _, ok := ds.LocationName(e.LocationID); !ok {
				refs = append(refs, Reference{Kind: RefLocation, EventID: e.ID, ID: e.LocationID})
			}
		}
	}

	return refs
}
