package garage

import (
	"fmt"
	"time"
)

// Timestamp layouts used for every textual rendering of garage times.
const (
	TimestampLayout        = "2006-01-02 15:04:05"
	CompactTimestampLayout = "15:04:05"
)

type EventKind string

const (
	EventEntry EventKind = "entry"
	EventExit  EventKind = "exit"
)

// Event is one immutable ledger record. Entry events carry a zero ExitTime
// and zero BilledHours and Fee; exit events carry all fields.
type Event struct {
	Kind        EventKind
	Plate       string
	Category    Category
	EntryTime   time.Time
	ExitTime    time.Time
	BilledHours int
	Fee         int
}

// FormatLine renders the event as a single report line, formatting its
// timestamp with the given layout.
func (e Event) FormatLine(layout string) string {
	if e.Kind == EventEntry {
		return fmt.Sprintf("ENTRY | time: %s | vehicle: %s (%s)",
			e.EntryTime.Format(layout), e.Plate, e.Category.Label())
	}
	return fmt.Sprintf("EXIT | time: %s | vehicle: %s (%s) | hours: %d | fee: %d",
		e.ExitTime.Format(layout), e.Plate, e.Category.Label(), e.BilledHours, e.Fee)
}

func (e Event) String() string {
	return e.FormatLine(CompactTimestampLayout)
}
