package garage

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewGarage(t *testing.T) {
	g := NewGarage(6)

	if g.Capacity() != 6 {
		t.Errorf("Expected capacity 6, got %d", g.Capacity())
	}
	if g.CurrentCount() != 0 {
		t.Errorf("Expected empty garage, got %d vehicles", g.CurrentCount())
	}
	if g.RemainingSpace() != 6 {
		t.Errorf("Expected remaining space 6, got %d", g.RemainingSpace())
	}
}

func TestGaragePark(t *testing.T) {
	g := NewGarage(3)

	for i, plate := range []string{"KA01HH1234", "KA01HH9999", "KA01BB0001"} {
		event, err := g.Park(plate, General)
		if err != nil {
			t.Errorf("Unexpected error: %s", err.Error())
		}
		if event.Kind != EventEntry {
			t.Errorf("Expected entry event, got %s", event.Kind)
		}
		if event.Plate != plate {
			t.Errorf("Expected plate %s, got %s", plate, event.Plate)
		}
		if g.CurrentCount() != i+1 {
			t.Errorf("Expected count %d, got %d", i+1, g.CurrentCount())
		}
	}

	_, err := g.Park("KA01HH7777", Compact)
	if !errors.Is(err, ErrGarageFull) {
		t.Errorf("Expected ErrGarageFull, got %v", err)
	}
	if g.CurrentCount() != 3 {
		t.Errorf("Expected count unchanged after rejected park, got %d", g.CurrentCount())
	}
	if g.DailyEntryCount() != 3 {
		t.Errorf("Expected 3 recorded entries, got %d", g.DailyEntryCount())
	}
	if g.CurrentCount()+g.RemainingSpace() != g.Capacity() {
		t.Error("Expected occupancy plus remaining space to equal capacity")
	}
}

func TestExitBySlotAddressing(t *testing.T) {
	g := NewGarage(5)
	g.Park("A", General)
	g.Park("B", General)
	g.Park("C", General)

	// Slot 1 is the most recent arrival (C), slot 3 the earliest (A).
	event, err := g.ExitBySlot(2)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if event.Plate != "B" {
		t.Errorf("Expected vehicle B at slot 2, got %s", event.Plate)
	}

	occupants := g.Occupants()
	if len(occupants) != 2 {
		t.Fatalf("Expected 2 occupants, got %d", len(occupants))
	}
	if occupants[0].Plate != "A" || occupants[1].Plate != "C" {
		t.Errorf("Expected order [A C], got [%s %s]", occupants[0].Plate, occupants[1].Plate)
	}
}

func TestExitBySlotPreservesRelativeOrder(t *testing.T) {
	plates := []string{"A", "B", "C", "D", "E"}

	for slot := 1; slot <= len(plates); slot++ {
		g := NewGarage(len(plates))
		for _, p := range plates {
			g.Park(p, General)
		}

		event, err := g.ExitBySlot(slot)
		if err != nil {
			t.Fatalf("slot %d: unexpected error: %s", slot, err.Error())
		}

		removed := plates[len(plates)-slot]
		if event.Plate != removed {
			t.Errorf("slot %d: expected %s removed, got %s", slot, removed, event.Plate)
		}

		var want []string
		for _, p := range plates {
			if p != removed {
				want = append(want, p)
			}
		}

		got := g.Occupants()
		if len(got) != len(want) {
			t.Fatalf("slot %d: expected %d occupants, got %d", slot, len(want), len(got))
		}
		for i := range want {
			if got[i].Plate != want[i] {
				t.Errorf("slot %d: expected %s at position %d, got %s", slot, want[i], i, got[i].Plate)
			}
		}
	}
}

func TestExitBySlotBounds(t *testing.T) {
	g := NewGarage(3)

	if _, err := g.ExitBySlot(1); !errors.Is(err, ErrGarageEmpty) {
		t.Errorf("Expected ErrGarageEmpty, got %v", err)
	}

	g.Park("KA01HH1234", General)
	g.Park("KA01HH9999", Compact)

	if _, err := g.ExitBySlot(0); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("Expected ErrSlotOutOfRange for slot 0, got %v", err)
	}
	if _, err := g.ExitBySlot(-1); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("Expected ErrSlotOutOfRange for slot -1, got %v", err)
	}
	if _, err := g.ExitBySlot(3); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("Expected ErrSlotOutOfRange for slot 3, got %v", err)
	}

	if g.CurrentCount() != 2 {
		t.Errorf("Expected count unchanged after rejected exits, got %d", g.CurrentCount())
	}
	if g.DailyExitCount() != 0 {
		t.Errorf("Expected no recorded exits, got %d", g.DailyExitCount())
	}

	occupants := g.Occupants()
	if occupants[0].Plate != "KA01HH1234" || occupants[1].Plate != "KA01HH9999" {
		t.Error("Expected occupant order unchanged after rejected exits")
	}
}

func TestBilledHours(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     int
	}{
		{"zero", 0, 0},
		{"thirty seconds", 30 * time.Second, 0},
		{"one minute", time.Minute, 1},
		{"fifty-nine minutes", 59 * time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"sixty-one minutes", 61 * time.Minute, 2},
		{"ninety minutes", 90 * time.Minute, 2},
		{"exactly two hours", 2 * time.Hour, 2},
		{"two hours one second", 2*time.Hour + time.Second, 2},
		{"two hours one minute", 2*time.Hour + time.Minute, 3},
	}

	for _, tc := range cases {
		if got := BilledHours(tc.duration); got != tc.want {
			t.Errorf("%s: expected %d billed hours, got %d", tc.name, tc.want, got)
		}
	}
}

func TestExitFeeComputation(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		category  Category
		parked    time.Duration
		wantHours int
		wantFee   int
	}{
		{"general one hour", General, time.Hour, 1, 1000},
		{"general sixty-one minutes", General, 61 * time.Minute, 2, 2000},
		{"compact ninety minutes", Compact, 90 * time.Minute, 2, 1000},
		{"disabled long stay", Disabled, 5 * time.Hour, 5, 0},
		{"official three hours", Official, 3 * time.Hour, 3, 0},
		{"sub-minute stay", General, 30 * time.Second, 0, 0},
	}

	for _, tc := range cases {
		g := NewGarage(1)
		now := base
		g.now = func() time.Time { return now }

		if _, err := g.Park("KA01HH1234", tc.category); err != nil {
			t.Fatalf("%s: unexpected error: %s", tc.name, err.Error())
		}
		now = base.Add(tc.parked)

		event, err := g.ExitBySlot(1)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", tc.name, err.Error())
		}
		if event.BilledHours != tc.wantHours {
			t.Errorf("%s: expected %d billed hours, got %d", tc.name, tc.wantHours, event.BilledHours)
		}
		if event.Fee != tc.wantFee {
			t.Errorf("%s: expected fee %d, got %d", tc.name, tc.wantFee, event.Fee)
		}
		if event.EntryTime != base {
			t.Errorf("%s: expected entry time preserved on exit event", tc.name)
		}
		if event.ExitTime != now {
			t.Errorf("%s: expected exit time %v, got %v", tc.name, now, event.ExitTime)
		}
	}
}

func TestLedgerConsistency(t *testing.T) {
	g := NewGarage(4)

	current := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	g.now = func() time.Time {
		current = current.Add(45 * time.Minute)
		return current
	}

	g.TryPark("A", General)
	g.TryPark("B", Compact)
	g.TryPark("C", Disabled)

	if !g.TryExitBySlot(2) { // removes B
		t.Error("Expected exit of slot 2 to succeed")
	}

	g.TryPark("D", Official)

	if !g.TryExitBySlot(3) { // stack is A, C, D so slot 3 is A
		t.Error("Expected exit of slot 3 to succeed")
	}

	if g.TryExitBySlot(9) {
		t.Error("Expected exit of slot 9 to fail")
	}

	g.TryPark("E", General)
	g.TryPark("F", General)

	if g.TryPark("G", General) {
		t.Error("Expected park to fail at capacity")
	}

	entries := g.EntryRecords()
	exits := g.ExitRecords()

	if g.DailyEntryCount() != 6 || len(entries) != 6 {
		t.Errorf("Expected 6 entries, counter %d and records %d", g.DailyEntryCount(), len(entries))
	}
	if g.DailyExitCount() != 2 || len(exits) != 2 {
		t.Errorf("Expected 2 exits, counter %d and records %d", g.DailyExitCount(), len(exits))
	}

	sum := 0
	for _, e := range exits {
		sum += e.Fee
	}
	if g.DailyRevenue() != sum {
		t.Errorf("Expected revenue %d to equal summed exit fees %d", g.DailyRevenue(), sum)
	}
	if sum == 0 {
		t.Error("Expected nonzero revenue from timed exits")
	}

	stats := g.DailyStats()
	if stats.Entries != 6 || stats.Exits != 2 || stats.Revenue != sum {
		t.Errorf("Expected stats {6 2 %d}, got %+v", sum, stats)
	}
}

func TestCapacityTwoScenario(t *testing.T) {
	g := NewGarage(2)

	if !g.TryPark("A", General) {
		t.Error("Expected park A to succeed")
	}
	if !g.TryPark("B", Compact) {
		t.Error("Expected park B to succeed")
	}
	if g.TryPark("C", General) {
		t.Error("Expected park C to fail when full")
	}

	event, err := g.ExitBySlot(1)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if event.Plate != "B" {
		t.Errorf("Expected B at slot 1, got %s", event.Plate)
	}
	if g.CurrentCount() != 1 {
		t.Errorf("Expected 1 vehicle after exit, got %d", g.CurrentCount())
	}

	if !g.TryPark("C", Disabled) {
		t.Error("Expected park C to succeed after space freed")
	}
	if g.RemainingSpace() != 0 {
		t.Errorf("Expected no remaining space, got %d", g.RemainingSpace())
	}
}

func TestListOccupants(t *testing.T) {
	g := NewGarage(3)
	entry := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	g.now = func() time.Time { return entry }

	g.Park("KA01HH1234", Compact)

	lines := g.ListOccupants()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	want := "KA01HH1234 (Compact) - entry: 2025-03-14 09:30:00"
	if lines[0] != want {
		t.Errorf("Expected %q, got %q", want, lines[0])
	}
}

func TestListOccupantsOrderAndStability(t *testing.T) {
	g := NewGarage(3)
	g.Park("A", General)
	g.Park("B", General)
	g.Park("C", General)

	first := g.ListOccupants()
	second := g.ListOccupants()

	if len(first) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Error("Expected repeated listings to be identical")
		}
	}

	if !strings.HasPrefix(first[0], "A ") {
		t.Errorf("Expected earliest arrival first, got %q", first[0])
	}
	if !strings.HasPrefix(first[2], "C ") {
		t.Errorf("Expected most recent arrival last, got %q", first[2])
	}

	// Listing must not disturb slot addressing.
	event, err := g.ExitBySlot(1)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if event.Plate != "C" {
		t.Errorf("Expected C at slot 1 after listing, got %s", event.Plate)
	}
}

func TestRecordCopiesAreIndependent(t *testing.T) {
	g := NewGarage(2)
	g.Park("KA01HH1234", General)
	g.ExitBySlot(1)

	entries := g.EntryRecords()
	entries[0].Plate = "MUTATED"

	if g.EntryRecords()[0].Plate != "KA01HH1234" {
		t.Error("Expected internal entry records unaffected by caller mutation")
	}

	exits := g.ExitRecords()
	exits[0].Fee = 999999

	if g.ExitRecords()[0].Fee == 999999 {
		t.Error("Expected internal exit records unaffected by caller mutation")
	}
}

func TestOccupantsCopyIsIndependent(t *testing.T) {
	g := NewGarage(2)
	g.Park("KA01HH1234", General)

	occupants := g.Occupants()
	occupants[0].Plate = "MUTATED"

	if g.Occupants()[0].Plate != "KA01HH1234" {
		t.Error("Expected internal stack unaffected by caller mutation")
	}
}
