// Package models defines the records loaded from the data files and the view models derived from them.
package models

import "slices"

// CastEntry is one person's participation in an event.
type CastEntry struct {
	UserID *int   `json:"userId,omitempty" validate:"omitempty,gt=0"`
	Role   string `json:"role,omitempty"`
}

// Event represents a single recorded MMP.
//
// HostID and HostIDs mirror the two wire fields. Use Hosts for the reconciled list.
type Event struct {
	HostID     *int        `json:"hostId,omitempty" validate:"omitempty,gt=0"`
	ID         int         `json:"id" validate:"gt=0"`
	Code       string      `json:"code"`
	Title      string      `json:"title"`
	Date       string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	HostIDs    []int       `json:"hostIds,omitempty" validate:"omitempty,dive,gt=0"`
	LocationID int         `json:"locationId"`
	Cast       []CastEntry `json:"cast,omitempty" validate:"omitempty,dive"`
	Media      []string    `json:"media,omitempty"`
	Canon      bool        `json:"canon"`
}

// Hosts returns the unified host list. HostID, when set, is always first;
// the remaining HostIDs follow in their order without repeating it.
func (e Event) Hosts() []int {
	if e.HostID == nil {
		if len(e.HostIDs) == 0 {
			return nil
		}

		return e.HostIDs
	}

	hosts := make([]int, 0, len(e.HostIDs)+1)
	hosts = append(hosts, *e.HostID)

	for _, id := range e.HostIDs {
		if id != *e.HostID {
			hosts = append(hosts, id)
		}
	}

	return hosts
}

// PrimaryHost returns the first host of the event, if any.
func (e Event) PrimaryHost() (int, bool) {
	hosts := e.Hosts()
	if len(hosts) == 0 {
		return 0, false
	}

	return hosts[0], true
}

// HasHost reports whether personID hosted the event.
func (e Event) HasHost(personID int) bool {
	return slices.Contains(e.Hosts(), personID)
}

// CastEntryFor returns the first cast entry of personID.
func (e Event) CastEntryFor(personID int) (CastEntry, bool) {
	for _, c := range e.Cast {
		if c.UserID != nil && *c.UserID == personID {
			return c, true
		}
	}

	return CastEntry{}, false
}

// Participants returns the distinct person ids in the event: the primary host
// followed by cast members, in order of first appearance.
func (e Event) Participants() []int {
	ids := make([]int, 0, len(e.Cast)+1)

	if host, ok := e.PrimaryHost(); ok {
		ids = append(ids, host)
	}

	for _, c := range e.Cast {
		if c.UserID != nil && !slices.Contains(ids, *c.UserID) {
			ids = append(ids, *c.UserID)
		}
	}

	return ids
}

// IntPtr is a convenience for building events in code.
func IntPtr(v int) *int {
	return &v
}
