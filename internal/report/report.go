package report

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"parking-garage/internal/garage"
)

// Source is the slice of the garage query surface the report consumes.
type Source interface {
	EntryRecords() []garage.Event
	ExitRecords() []garage.Event
	DailyRevenue() int
}

var amounts = message.NewPrinter(language.English)

// Daily renders the daily revenue report: entries then exits, each section
// sorted by its own timestamp ascending, followed by the revenue total. The
// record getters return copies, so sorting here never reorders garage state.
func Daily(src Source, issuedAt time.Time) string {
	var b strings.Builder

	b.WriteString("===== Daily Revenue Report =====\n")
	b.WriteString("Issued at: " + issuedAt.Format(garage.TimestampLayout) + "\n\n")

	b.WriteString("--- Entries by time ---\n")
	entries := src.EntryRecords()
	if len(entries) == 0 {
		b.WriteString("No entry records.\n")
	} else {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].EntryTime.Before(entries[j].EntryTime)
		})
		for _, e := range entries {
			b.WriteString(e.FormatLine(garage.TimestampLayout) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("--- Exits by time ---\n")
	exits := src.ExitRecords()
	if len(exits) == 0 {
		b.WriteString("No exit records.\n")
	} else {
		sort.Slice(exits, func(i, j int) bool {
			return exits[i].ExitTime.Before(exits[j].ExitTime)
		})
		for _, e := range exits {
			b.WriteString(e.FormatLine(garage.TimestampLayout) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(amounts.Sprintf("Total revenue: %d\n", src.DailyRevenue()))
	b.WriteString("================================")

	return b.String()
}
