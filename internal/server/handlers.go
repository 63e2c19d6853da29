package server

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"parking-garage/internal/garage"
	"parking-garage/internal/report"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-garage-service"
}

// Handler serves the garage API. The garage itself is single-threaded by
// contract, so every call into it is serialized behind mu.
type Handler struct {
	garage *garage.InstrumentedGarage
	mu     sync.Mutex
}

func NewHandler(g *garage.InstrumentedGarage) *Handler {
	return &Handler{garage: g}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": getServiceName(),
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Plate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Plate is required")
		return
	}

	category := garage.CategoryFromCode(req.Category)

	h.mu.Lock()
	event, err := h.garage.Park(ctx, req.Plate, category)
	h.mu.Unlock()

	if err != nil {
		WriteError(ctx, w, http.StatusConflict, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", ParkData{
		Plate:     event.Plate,
		Category:  event.Category.Label(),
		EntryTime: event.EntryTime.Format(garage.TimestampLayout),
	})
}

func (h *Handler) ExitVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SlotNumber <= 0 {
		WriteError(ctx, w, http.StatusBadRequest, "Slot number must be greater than 0")
		return
	}

	h.mu.Lock()
	event, err := h.garage.ExitBySlot(ctx, req.SlotNumber)
	h.mu.Unlock()

	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle exited successfully", ExitData{
		Plate:       event.Plate,
		Category:    event.Category.Label(),
		EntryTime:   event.EntryTime.Format(garage.TimestampLayout),
		ExitTime:    event.ExitTime.Format(garage.TimestampLayout),
		BilledHours: event.BilledHours,
		Fee:         event.Fee,
	})
}

func (h *Handler) ListOccupants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	lines := h.garage.ListOccupants(ctx)
	occupants := h.garage.Occupants()
	h.mu.Unlock()

	count := len(occupants)
	vehicles := make([]OccupantStatus, 0, count)
	for i, v := range occupants {
		vehicles = append(vehicles, OccupantStatus{
			Slot:      count - i,
			Plate:     v.Plate,
			Category:  v.Category.Label(),
			EntryTime: v.EntryTime.Format(garage.TimestampLayout),
			Display:   lines[i],
		})
	}

	WriteSuccess(ctx, w, "Occupants retrieved successfully", OccupantsResponse{
		Count:    count,
		Vehicles: vehicles,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	capacity := h.garage.Capacity()
	occupied := h.garage.CurrentCount()
	available := h.garage.RemainingSpace()
	h.mu.Unlock()

	WriteSuccess(ctx, w, "Status retrieved successfully", StatusResponse{
		Capacity:  capacity,
		Occupied:  occupied,
		Available: available,
	})
}

func (h *Handler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	stats := h.garage.DailyStats(ctx)
	h.mu.Unlock()

	WriteSuccess(ctx, w, "Stats retrieved successfully", StatsResponse{
		Entries: stats.Entries,
		Exits:   stats.Exits,
		Revenue: stats.Revenue,
	})
}

func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	entryEvents := h.garage.EntryRecords()
	exitEvents := h.garage.ExitRecords()
	h.mu.Unlock()

	entries := make([]EventRecord, 0, len(entryEvents))
	for _, e := range entryEvents {
		entries = append(entries, newEventRecord(e))
	}

	exits := make([]EventRecord, 0, len(exitEvents))
	for _, e := range exitEvents {
		exits = append(exits, newEventRecord(e))
	}

	WriteSuccess(ctx, w, "Records retrieved successfully", RecordsResponse{
		Entries: entries,
		Exits:   exits,
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	text := report.Daily(h.garage, time.Now())
	h.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
