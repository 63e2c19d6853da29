package garage

// Category is the pricing class of a vehicle. The constant values double as
// the integer codes callers use on the wire and in the shell.
type Category int

const (
	General  Category = 1
	Compact  Category = 2
	Disabled Category = 3
	Official Category = 4
)

type categoryInfo struct {
	hourlyRate int
	label      string
}

var categoryTable = map[Category]categoryInfo{
	General:  {hourlyRate: 1000, label: "General"},
	Compact:  {hourlyRate: 500, label: "Compact"},
	Disabled: {hourlyRate: 0, label: "Disabled"},
	Official: {hourlyRate: 0, label: "Official"},
}

// CategoryFromCode maps an integer code to its Category. Unrecognized codes
// fall back to General instead of failing; callers that need strict
// validation must range-check the code themselves.
func CategoryFromCode(code int) Category {
	c := Category(code)
	if _, ok := categoryTable[c]; !ok {
		return General
	}
	return c
}

func (c Category) info() categoryInfo {
	if info, ok := categoryTable[c]; ok {
		return info
	}
	return categoryTable[General]
}

// HourlyRate is the fee charged per billed hour.
func (c Category) HourlyRate() int {
	return c.info().hourlyRate
}

// Label is the display name used in listings and reports.
func (c Category) Label() string {
	return c.info().label
}

func (c Category) String() string {
	return c.Label()
}
