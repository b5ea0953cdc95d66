package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gertd/go-pluralize"

	"mmpstats/internal/models"
	"mmpstats/pkg/utils"
)

// DefaultTitleWidth bounds the title column of the timeline table.
const DefaultTitleWidth = 40

var plural = pluralize.NewClient()

// Count labels n with word, pluralized: "1 event", "3 events".
func Count(word string, n int) string {
	return plural.Pluralize(word, n, true)
}

// Hall renders the three rankings.
func Hall(h models.Hall) string {
	var sb strings.Builder

	sb.WriteString("# Hall of Fame\n")
	writeRanking(&sb, "Hosts", "event", h.Hosts)
	writeRanking(&sb, "Participants", "appearance", h.Participants)
	writeRanking(&sb, "Locations", "event", h.Locations)

	return sb.String()
}

func writeRanking(sb *strings.Builder, title, unit string, entries []models.RankEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Rank, e.Name, Count(unit, e.Count)})
	}

	fmt.Fprintf(sb, "\n## %s\n\n%s\n", title, Table([]string{"Rank", "Name", "Count"}, rows))
}

// Roster renders the alphabetical participant list.
func Roster(entries []models.RosterEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, Count("appearance", e.Appearances)})
	}

	return fmt.Sprintf("# Participants (%s)\n\n%s\n",
		Count("person", len(entries)),
		Table([]string{"Name", "Appearances"}, rows),
	)
}

// Person renders one person's history and character list.
func Person(ps *models.PersonStats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n%s, hosted %s\n\n",
		ps.Name,
		Count("appearance", ps.TotalAppearances),
		Count("time", ps.TimesHosted),
	)

	rows := make([][]string, 0, len(ps.Appearances))
	for _, a := range ps.Appearances {
		role := ""
		if a.Role != nil {
			role = *a.Role
		}

		host := ""
		if a.IsHost {
			host = "yes"
		}

		rows = append(rows, []string{a.Date, a.Code, a.Title, role, host})
	}

	sb.WriteString(Table([]string{"Date", "Code", "Title", "Role", "Host"}, rows))
	sb.WriteString("\n")

	if len(ps.Characters) > 0 {
		chars := make([][]string, 0, len(ps.Characters))
		for _, c := range ps.Characters {
			chars = append(chars, []string{c.Role, c.EventCode, c.EventTitle})
		}

		fmt.Fprintf(&sb, "\n## Characters\n\n%s\n", Table([]string{"Role", "Code", "Title"}, chars))
	}

	return sb.String()
}

// Timeline renders the chronological listing, truncating titles to titleWidth
// display columns (no limit when titleWidth <= 0).
func Timeline(entries []models.TimelineEntry, titleWidth int) string {
	strs := utils.NewStringHelper()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		canon := ""
		if e.Canon {
			canon = "✓"
		}

		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Code,
			strs.TruncateWidth(e.Title, titleWidth),
			e.Date,
			e.LocationName,
			strings.Join(e.HostNames, ", "),
			canon,
		})
	}

	return fmt.Sprintf("# Events (%d)\n\n%s\n",
		len(entries),
		Table([]string{"ID", "Code", "Title", "Date", "Location", "Hosts", "Canon"}, rows),
	)
}
