package shell

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"parking-garage/internal/garage"
	"parking-garage/internal/report"
)

var amounts = message.NewPrinter(language.English)

type Shell struct {
	garage    *garage.InstrumentedGarage
	scanner   *bufio.Scanner
	telemetry *garage.TelemetryProvider
}

func New(telemetry *garage.TelemetryProvider) *Shell {
	return &Shell{
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		// Create a new span for each command
		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		quit := s.processCommand(cmdCtx, input)
		cmdSpan.End()

		if quit {
			break
		}
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) bool {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.parse_command")
	defer span.End()

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	command := parts[0]
	span.SetAttributes(attribute.String("command.name", command))

	switch command {
	case "create_garage":
		s.handleCreateGarage(ctx, parts)
	case "park":
		s.handlePark(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "list":
		s.handleList(ctx)
	case "status":
		s.handleStatus(ctx)
	case "stats":
		s.handleStats(ctx)
	case "report":
		s.handleReport(ctx)
	case "help":
		s.printUsage()
	case "quit":
		span.AddEvent("quit_requested")
		fmt.Println("Bye")
		return true
	default:
		span.AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		fmt.Printf("Unknown command: %s\n", command)
	}

	return false
}

func (s *Shell) printUsage() {
	fmt.Println("Commands:")
	fmt.Println("  create_garage <capacity>")
	fmt.Println("  park <plate> <category_code>")
	fmt.Println("  exit <slot_number>")
	fmt.Println("  list")
	fmt.Println("  status")
	fmt.Println("  stats")
	fmt.Println("  report")
	fmt.Println("  quit")
	fmt.Println("Category codes: 1=General 2=Compact 3=Disabled 4=Official")
}

func (s *Shell) handleCreateGarage(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.create_garage")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Println("Usage: create_garage <capacity>")
		return
	}

	capacity, err := strconv.Atoi(parts[1])
	if err != nil || capacity <= 0 {
		span.RecordError(fmt.Errorf("invalid capacity: %s", parts[1]))
		span.AddEvent("invalid_capacity")
		fmt.Println("Invalid capacity")
		return
	}

	span.SetAttributes(attribute.Int("garage.capacity", capacity))

	instrumentedGarage, err := garage.NewInstrumentedGarage(capacity, s.telemetry)
	if err != nil {
		span.RecordError(err)
		fmt.Printf("Error creating garage: %s\n", err.Error())
		return
	}

	s.garage = instrumentedGarage
	span.AddEvent("garage_created")
	fmt.Printf("Created a garage with %d slots\n", capacity)
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.park_command")
	defer span.End()

	if s.garage == nil {
		span.AddEvent("garage_not_created")
		fmt.Println("Garage not created")
		return
	}

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		fmt.Println("Usage: park <plate> <category_code>")
		return
	}

	plate := parts[1]

	code, err := strconv.Atoi(parts[2])
	if err != nil {
		span.RecordError(fmt.Errorf("invalid category code: %s", parts[2]))
		span.AddEvent("invalid_category_code")
		fmt.Println("Invalid category code")
		return
	}

	category := garage.CategoryFromCode(code)

	span.SetAttributes(
		attribute.String("vehicle.plate", plate),
		attribute.String("vehicle.category", category.Label()),
	)

	event, err := s.garage.Park(ctx, plate, category)
	if err != nil {
		span.AddEvent("park_failed")
		fmt.Println("Sorry, garage is full")
		return
	}

	span.AddEvent("park_successful")
	fmt.Printf("Parked %s (%s) at %s\n", event.Plate, event.Category.Label(),
		event.EntryTime.Format(garage.TimestampLayout))
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.exit_command")
	defer span.End()

	if s.garage == nil {
		span.AddEvent("garage_not_created")
		fmt.Println("Garage not created")
		return
	}

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Println("Usage: exit <slot_number>")
		return
	}

	slot, err := strconv.Atoi(parts[1])
	if err != nil {
		span.RecordError(fmt.Errorf("invalid slot number: %s", parts[1]))
		span.AddEvent("invalid_slot_number")
		fmt.Println("Invalid slot number")
		return
	}

	span.SetAttributes(attribute.Int("slot_number", slot))

	event, err := s.garage.ExitBySlot(ctx, slot)
	if err != nil {
		span.AddEvent("exit_failed")
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	span.AddEvent("exit_successful")
	fmt.Printf("Vehicle %s exited after %d hour(s), fee %d\n",
		event.Plate, event.BilledHours, event.Fee)
}

func (s *Shell) handleList(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.list_command")
	defer span.End()

	if s.garage == nil {
		span.AddEvent("garage_not_created")
		fmt.Println("Garage not created")
		return
	}

	lines := s.garage.ListOccupants(ctx)
	if len(lines) == 0 {
		span.AddEvent("garage_empty")
		fmt.Println("Garage is empty")
		return
	}

	span.SetAttributes(attribute.Int("occupant_count", len(lines)))

	// Lines run earliest to most recent, so the slot numbers count down.
	count := len(lines)
	fmt.Println("Slot\tVehicle")
	for i, line := range lines {
		fmt.Printf("%d\t%s\n", count-i, line)
	}
}

func (s *Shell) handleStatus(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.status_command")
	defer span.End()

	if s.garage == nil {
		span.AddEvent("garage_not_created")
		fmt.Println("Garage not created")
		return
	}

	span.AddEvent("status_retrieved")
	fmt.Printf("Capacity: %d, parked: %d, available: %d\n",
		s.garage.Capacity(), s.garage.CurrentCount(), s.garage.RemainingSpace())
}

func (s *Shell) handleStats(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.stats_command")
	defer span.End()

	if s.garage == nil {
		span.AddEvent("garage_not_created")
		fmt.Println("Garage not created")
		return
	}

	stats := s.garage.DailyStats(ctx)
	span.AddEvent("stats_retrieved")
	amounts.Printf("Entries: %d | Exits: %d | Revenue: %d\n",
		stats.Entries, stats.Exits, stats.Revenue)
}

func (s *Shell) handleReport(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.report_command")
	defer span.End()

	if s.garage == nil {
		span.AddEvent("garage_not_created")
		fmt.Println("Garage not created")
		return
	}

	span.AddEvent("report_rendered")
	fmt.Println(report.Daily(s.garage, time.Now()))
}
