package garage

import "time"

// ParkedVehicle is a vehicle currently inside the garage. It is created on
// entry and discarded on exit; the fields never change in between.
type ParkedVehicle struct {
	Plate     string
	Category  Category
	EntryTime time.Time
}

func NewParkedVehicle(plate string, category Category, entryTime time.Time) ParkedVehicle {
	return ParkedVehicle{
		Plate:     plate,
		Category:  category,
		EntryTime: entryTime,
	}
}
