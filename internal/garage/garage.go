package garage

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrGarageFull     = errors.New("garage is full")
	ErrGarageEmpty    = errors.New("garage is empty")
	ErrSlotOutOfRange = errors.New("slot number out of range")
)

// Garage models a single-lane garage: vehicles enter and leave through one
// access point, so the occupancy order is a stack.
//
// A Garage is not safe for concurrent use; callers on multiple goroutines
// must serialize access externally.
type Garage struct {
	capacity int
	stack    []ParkedVehicle // stack[len-1] is the most recent arrival
	scratch  []ParkedVehicle // reused across ExitBySlot calls
	ledger   Ledger

	now func() time.Time
}

func NewGarage(capacity int) *Garage {
	return &Garage{
		capacity: capacity,
		stack:    make([]ParkedVehicle, 0, capacity),
		now:      time.Now,
	}
}

// Park admits a vehicle, stamping its entry time and recording an entry event.
func (g *Garage) Park(plate string, category Category) (Event, error) {
	if len(g.stack) >= g.capacity {
		return Event{}, ErrGarageFull
	}

	entryTime := g.now()
	g.stack = append(g.stack, NewParkedVehicle(plate, category, entryTime))

	event := Event{
		Kind:      EventEntry,
		Plate:     plate,
		Category:  category,
		EntryTime: entryTime,
	}
	g.ledger.RecordEntry(event)

	return event, nil
}

// ExitBySlot removes the vehicle at the given slot, where slot 1 is the most
// recent arrival and slot CurrentCount() the earliest. Vehicles above the
// target are held in the scratch buffer and pushed back afterwards, so the
// relative order of the others never changes.
func (g *Garage) ExitBySlot(slot int) (Event, error) {
	if len(g.stack) == 0 {
		return Event{}, ErrGarageEmpty
	}
	if slot < 1 || slot > len(g.stack) {
		return Event{}, fmt.Errorf("%w: %d of %d", ErrSlotOutOfRange, slot, len(g.stack))
	}

	g.scratch = g.scratch[:0]

	var target ParkedVehicle
	for current := 1; ; current++ {
		vehicle := g.pop()
		if current == slot {
			target = vehicle
			break
		}
		g.scratch = append(g.scratch, vehicle)
	}

	for i := len(g.scratch) - 1; i >= 0; i-- {
		g.stack = append(g.stack, g.scratch[i])
	}
	g.scratch = g.scratch[:0]

	exitTime := g.now()
	hours := BilledHours(exitTime.Sub(target.EntryTime))
	fee := hours * target.Category.HourlyRate()

	event := Event{
		Kind:        EventExit,
		Plate:       target.Plate,
		Category:    target.Category,
		EntryTime:   target.EntryTime,
		ExitTime:    exitTime,
		BilledHours: hours,
		Fee:         fee,
	}
	g.ledger.RecordExit(event)

	return event, nil
}

func (g *Garage) pop() ParkedVehicle {
	v := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	return v
}

// TryPark reports whether the vehicle was admitted, discarding the reason.
func (g *Garage) TryPark(plate string, category Category) bool {
	_, err := g.Park(plate, category)
	return err == nil
}

// TryExitBySlot reports whether the exit succeeded, discarding the reason.
func (g *Garage) TryExitBySlot(slot int) bool {
	_, err := g.ExitBySlot(slot)
	return err == nil
}

// BilledHours truncates a parked duration to whole minutes, then rounds any
// minutes past a full hour up. A stay under one minute bills zero hours.
func BilledHours(d time.Duration) int {
	minutes := int64(d / time.Minute)
	hours := minutes / 60
	if minutes%60 > 0 {
		hours++
	}
	return int(hours)
}

// ListOccupants returns one display line per parked vehicle, ordered from
// the earliest arrival to the most recent.
func (g *Garage) ListOccupants() []string {
	lines := make([]string, 0, len(g.stack))
	for _, v := range g.stack {
		lines = append(lines, fmt.Sprintf("%s (%s) - entry: %s",
			v.Plate, v.Category.Label(), v.EntryTime.Format(TimestampLayout)))
	}
	return lines
}

// Occupants returns a copy of the parked vehicles ordered from the earliest
// arrival to the most recent. The vehicle at index i occupies slot
// CurrentCount()-i.
func (g *Garage) Occupants() []ParkedVehicle {
	out := make([]ParkedVehicle, len(g.stack))
	copy(out, g.stack)
	return out
}

func (g *Garage) Capacity() int { return g.capacity }

func (g *Garage) CurrentCount() int { return len(g.stack) }

func (g *Garage) RemainingSpace() int { return g.capacity - len(g.stack) }

func (g *Garage) DailyEntryCount() int { return g.ledger.EntryCount() }

func (g *Garage) DailyExitCount() int { return g.ledger.ExitCount() }

func (g *Garage) DailyRevenue() int { return g.ledger.Revenue() }

func (g *Garage) DailyStats() Stats { return g.ledger.Stats() }

func (g *Garage) EntryRecords() []Event { return g.ledger.EntryRecords() }

func (g *Garage) ExitRecords() []Event { return g.ledger.ExitRecords() }
