package garage

// Stats is the daily aggregate view of the ledger.
type Stats struct {
	Entries int
	Exits   int
	Revenue int
}

// Ledger is the append-only record of entry and exit events. The daily
// counters are maintained alongside the event sequences rather than
// recomputed from them; the two must always agree.
type Ledger struct {
	entries []Event
	exits   []Event

	entryCount int
	exitCount  int
	revenue    int
}

func (l *Ledger) RecordEntry(e Event) {
	l.entries = append(l.entries, e)
	l.entryCount++
}

func (l *Ledger) RecordExit(e Event) {
	l.exits = append(l.exits, e)
	l.exitCount++
	l.revenue += e.Fee
}

func (l *Ledger) EntryCount() int { return l.entryCount }

func (l *Ledger) ExitCount() int { return l.exitCount }

func (l *Ledger) Revenue() int { return l.revenue }

// EntryRecords returns an independent copy of the entry events.
func (l *Ledger) EntryRecords() []Event {
	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// ExitRecords returns an independent copy of the exit events.
func (l *Ledger) ExitRecords() []Event {
	out := make([]Event, len(l.exits))
	copy(out, l.exits)
	return out
}

func (l *Ledger) Stats() Stats {
	return Stats{
		Entries: l.entryCount,
		Exits:   l.exitCount,
		Revenue: l.revenue,
	}
}
