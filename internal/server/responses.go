package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"parking-garage/internal/garage"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type ParkRequest struct {
	Plate    string `json:"plate"`
	Category int    `json:"category"`
}

type ExitRequest struct {
	SlotNumber int `json:"slot_number"`
}

type ParkData struct {
	Plate     string `json:"plate"`
	Category  string `json:"category"`
	EntryTime string `json:"entry_time"`
}

type ExitData struct {
	Plate       string `json:"plate"`
	Category    string `json:"category"`
	EntryTime   string `json:"entry_time"`
	ExitTime    string `json:"exit_time"`
	BilledHours int    `json:"billed_hours"`
	Fee         int    `json:"fee"`
}

type OccupantStatus struct {
	Slot      int    `json:"slot"`
	Plate     string `json:"plate"`
	Category  string `json:"category"`
	EntryTime string `json:"entry_time"`
	Display   string `json:"display"`
}

type OccupantsResponse struct {
	Count    int              `json:"count"`
	Vehicles []OccupantStatus `json:"vehicles"`
}

type StatusResponse struct {
	Capacity  int `json:"capacity"`
	Occupied  int `json:"occupied"`
	Available int `json:"available"`
}

type StatsResponse struct {
	Entries int `json:"entries"`
	Exits   int `json:"exits"`
	Revenue int `json:"revenue"`
}

type EventRecord struct {
	Kind        string `json:"kind"`
	Plate       string `json:"plate"`
	Category    string `json:"category"`
	EntryTime   string `json:"entry_time"`
	ExitTime    string `json:"exit_time,omitempty"`
	BilledHours int    `json:"billed_hours"`
	Fee         int    `json:"fee"`
}

type RecordsResponse struct {
	Entries []EventRecord `json:"entries"`
	Exits   []EventRecord `json:"exits"`
}

func newEventRecord(e garage.Event) EventRecord {
	rec := EventRecord{
		Kind:        string(e.Kind),
		Plate:       e.Plate,
		Category:    e.Category.Label(),
		EntryTime:   e.EntryTime.Format(garage.TimestampLayout),
		BilledHours: e.BilledHours,
		Fee:         e.Fee,
	}
	if !e.ExitTime.IsZero() {
		rec.ExitTime = e.ExitTime.Format(garage.TimestampLayout)
	}
	return rec
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
