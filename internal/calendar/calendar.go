// Package calendar exports the event listing as an iCalendar document.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"mmpstats/internal/models"
)

// ProductID identifies the generator in exported calendars.
const ProductID = "-//mmpstats//Events//EN"

const dateLayout = "2006-01-02"

// ErrEmptyCalendar is returned when no event has a usable date.
var ErrEmptyCalendar = errors.New("no events with a valid date")

// Exporter writes timelines as iCalendar documents.
type Exporter struct {
	// Now stamps DTSTAMP; defaults to time.Now.
	Now    func() time.Time
	domain string
}

// NewExporter creates an exporter issuing UIDs under domain.
func NewExporter(domain string) *Exporter {
	return &Exporter{
		Now:    time.Now,
		domain: domain,
	}
}

// Encode writes one all-day VEVENT per entry. Entries without a valid
// YYYY-MM-DD date are skipped.
func (x *Exporter) Encode(w io.Writer, entries []models.TimelineEntry) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	stamp := x.Now().UTC()

	for _, entry := range entries {
		day, err := time.Parse(dateLayout, entry.Date)
		if err != nil {
			continue
		}

		cal.Children = append(cal.Children, x.event(entry, day, stamp).Component)
	}

	if len(cal.Children) == 0 {
		return ErrEmptyCalendar
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}

	return nil
}

func (x *Exporter) event(entry models.TimelineEntry, day, stamp time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, UID(entry.ID, x.domain))
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.SetDate(ical.PropDateTimeStart, day)
	event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
	event.Props.SetText(ical.PropSummary, strings.TrimSpace(entry.Code+" "+entry.Title))

	if entry.LocationName != "" {
		event.Props.SetText(ical.PropLocation, entry.LocationName)
	}

	if len(entry.HostNames) > 0 {
		event.Props.SetText(ical.PropDescription, "Hosted by "+strings.Join(entry.HostNames, ", "))
	}

	return event
}

// UID returns the stable calendar identifier of an event.
func UID(id int, domain string) string {
	return "mmp-" + strconv.Itoa(id) + "@" + domain
}
