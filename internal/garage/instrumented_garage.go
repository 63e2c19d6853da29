package garage

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedGarage struct {
	*Garage
	telemetry *TelemetryProvider

	// Metrics
	parkOperations    metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	capacityGauge     metric.Int64UpDownCounter
	revenueCounter    metric.Int64Counter
	operationDuration metric.Float64Histogram
}

func NewInstrumentedGarage(capacity int, telemetry *TelemetryProvider) (*InstrumentedGarage, error) {
	baseGarage := NewGarage(capacity)

	meter := telemetry.Meter()

	parkOperations, err := meter.Int64Counter("park_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("exit_operations_total",
		metric.WithDescription("Total number of exit operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("garage_occupancy",
		metric.WithDescription("Current number of parked vehicles"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	capacityGauge, err := meter.Int64UpDownCounter("garage_capacity_slots",
		metric.WithDescription("Total number of garage slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueCounter, err := meter.Int64Counter("garage_revenue_total",
		metric.WithDescription("Accumulated parking fees"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of garage operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	ig := &InstrumentedGarage{
		Garage:            baseGarage,
		telemetry:         telemetry,
		parkOperations:    parkOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		capacityGauge:     capacityGauge,
		revenueCounter:    revenueCounter,
		operationDuration: operationDuration,
	}

	// Set initial capacity metric
	capacityGauge.Add(context.Background(), int64(capacity))

	return ig, nil
}

func (ig *InstrumentedGarage) Park(ctx context.Context, plate string, category Category) (Event, error) {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.park",
		trace.WithAttributes(
			attribute.String("vehicle.plate", plate),
			attribute.String("vehicle.category", category.Label()),
		))
	defer span.End()

	start := time.Now()

	event, err := ig.Garage.Park(plate, category)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_category", category.Label()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.Int("garage.occupancy", ig.CurrentCount()))
		span.AddEvent("vehicle_parked", trace.WithAttributes(
			attribute.String("entry_time", event.EntryTime.Format(TimestampLayout)),
		))

		ig.occupancyGauge.Add(ctx, 1)
	}

	ig.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return event, err
}

func (ig *InstrumentedGarage) ExitBySlot(ctx context.Context, slot int) (Event, error) {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.exit_by_slot",
		trace.WithAttributes(
			attribute.Int("slot_number", slot),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("unwinding_stack")

	event, err := ig.Garage.ExitBySlot(slot)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "exit"),
		attribute.Int("slot_number", slot),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("vehicle_category", event.Category.Label()),
		)
		span.SetAttributes(
			attribute.String("vehicle.plate", event.Plate),
			attribute.Int("billed_hours", event.BilledHours),
			attribute.Int("fee", event.Fee),
		)
		span.AddEvent("stack_restored", trace.WithAttributes(
			attribute.Int("remaining_vehicles", ig.CurrentCount()),
		))

		ig.occupancyGauge.Add(ctx, -1)
		ig.revenueCounter.Add(ctx, int64(event.Fee), metric.WithAttributes(
			attribute.String("vehicle_category", event.Category.Label()),
		))
	}

	ig.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return event, err
}

func (ig *InstrumentedGarage) ListOccupants(ctx context.Context) []string {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.list_occupants")
	defer span.End()

	start := time.Now()

	lines := ig.Garage.ListOccupants()

	duration := time.Since(start).Seconds()

	span.SetAttributes(
		attribute.Int("occupant_count", len(lines)),
		attribute.Int("total_capacity", ig.Capacity()),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "list_occupants"),
		attribute.String("status", "success"),
	}

	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return lines
}

func (ig *InstrumentedGarage) DailyStats(ctx context.Context) Stats {
	tracer := ig.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.daily_stats")
	defer span.End()

	start := time.Now()

	stats := ig.Garage.DailyStats()

	duration := time.Since(start).Seconds()

	span.SetAttributes(
		attribute.Int("daily_entries", stats.Entries),
		attribute.Int("daily_exits", stats.Exits),
		attribute.Int("daily_revenue", stats.Revenue),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "daily_stats"),
		attribute.String("status", "success"),
	}

	ig.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return stats
}
