// Package units defines physical units and unit-tagged measurements.
//
// Every Unit belongs to exactly one Quantity and converts linearly to that
// quantity's base unit. Conversion between units of different quantities is
// always an error; nothing converts implicitly.
package units

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrIncompatibleUnit is returned when converting between different quantities.
var ErrIncompatibleUnit = errors.New("units: incompatible unit")

// ErrUnknownUnit is returned when parsing an unrecognized unit symbol.
var ErrUnknownUnit = errors.New("units: unknown unit")

// Quantity is a physical dimension.
type Quantity uint8

// Quantities.
const (
	Speed Quantity = iota + 1
	Length
	Duration
	Temperature
	Power
	Cadence
	Energy
)

// String returns the quantity name.
func (q Quantity) String() string {
	switch q {
	case Speed:
		return "speed"
	case Length:
		return "length"
	case Duration:
		return "duration"
	case Temperature:
		return "temperature"
	case Power:
		return "power"
	case Cadence:
		return "cadence"
	case Energy:
		return "energy"
	default:
		return fmt.Sprintf("quantity(%d)", uint8(q))
	}
}

// Unit is a unit of measure.
type Unit uint8

// Units, grouped by quantity. The first unit of each group is its base unit.
const (
	MetersPerSecond Unit = iota + 1
	KilometersPerHour
	MilesPerHour

	Meters
	Millimeters
	Centimeters
	Kilometers
	Feet
	Miles

	Seconds
	Milliseconds
	Minutes
	Hours

	Kelvin
	Celsius
	Fahrenheit

	Watts
	Kilowatts

	RevolutionsPerMinute
	BeatsPerMinute
	StrokesPerMinute
	StepsPerMinute

	Joules
	Kilojoules
	Calories
	Kilocalories
	KilowattHours
)

type unitInfo struct {
	quantity Quantity
	symbol   string
	coef     float64 // base = v*coef + offset
	offset   float64
}

var unitTable = map[Unit]unitInfo{
	MetersPerSecond:   {Speed, "m/s", 1, 0},
	KilometersPerHour: {Speed, "km/h", 1000.0 / 3600.0, 0},
	MilesPerHour:      {Speed, "mph", 1609.344 / 3600.0, 0},

	Meters:      {Length, "m", 1, 0},
	Millimeters: {Length, "mm", 0.001, 0},
	Centimeters: {Length, "cm", 0.01, 0},
	Kilometers:  {Length, "km", 1000, 0},
	Feet:        {Length, "ft", 0.3048, 0},
	Miles:       {Length, "mi", 1609.344, 0},

	Seconds:      {Duration, "s", 1, 0},
	Milliseconds: {Duration, "ms", 0.001, 0},
	Minutes:      {Duration, "min", 60, 0},
	Hours:        {Duration, "h", 3600, 0},

	Kelvin:     {Temperature, "K", 1, 0},
	Celsius:    {Temperature, "°C", 1, 273.15},
	Fahrenheit: {Temperature, "°F", 5.0 / 9.0, 273.15 - 32*5.0/9.0},

	Watts:     {Power, "W", 1, 0},
	Kilowatts: {Power, "kW", 1000, 0},

	RevolutionsPerMinute: {Cadence, "rpm", 1, 0},
	BeatsPerMinute:       {Cadence, "bpm", 1, 0},
	StrokesPerMinute:     {Cadence, "spm", 1, 0},
	StepsPerMinute:       {Cadence, "steps/min", 1, 0},

	Joules:        {Energy, "J", 1, 0},
	Kilojoules:    {Energy, "kJ", 1000, 0},
	Calories:      {Energy, "cal", 4.184, 0},
	Kilocalories:  {Energy, "kcal", 4184, 0},
	KilowattHours: {Energy, "kWh", 3.6e6, 0},
}

var symbolIndex = func() map[string]Unit {
	m := make(map[string]Unit, len(unitTable))
	for u, info := range unitTable {
		m[info.symbol] = u
	}
	return m
}()

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

// Quantity returns the quantity u measures, or 0 for an unknown unit.
func (u Unit) Quantity() Quantity {
	return unitTable[u].quantity
}

// Symbol returns the unit symbol, such as "km/h".
func (u Unit) Symbol() string {
	if info, ok := unitTable[u]; ok {
		return info.symbol
	}
	return fmt.Sprintf("unit(%d)", uint8(u))
}

// String returns the unit symbol.
func (u Unit) String() string { return u.Symbol() }

// ParseUnit returns the unit with the given symbol.
func ParseUnit(symbol string) (Unit, error) {
	u, ok := symbolIndex[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
	return u, nil
}

// MarshalJSON encodes the unit as its symbol.
func (u Unit) MarshalJSON() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, uint8(u))
	}
	return json.Marshal(u.Symbol())
}

// UnmarshalJSON decodes a unit from its symbol.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Measurement is a value tagged with its unit.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// New creates a measurement.
func New(v float64, u Unit) Measurement {
	return Measurement{Value: v, Unit: u}
}

// Convert returns m expressed in target.
// It fails with ErrIncompatibleUnit if the quantities differ.
func (m Measurement) Convert(target Unit) (Measurement, error) {
	from, ok := unitTable[m.Unit]
	if !ok {
		return Measurement{}, fmt.Errorf("%w: %d", ErrUnknownUnit, uint8(m.Unit))
	}
	to, ok := unitTable[target]
	if !ok {
		return Measurement{}, fmt.Errorf("%w: %d", ErrUnknownUnit, uint8(target))
	}
	if from.quantity != to.quantity {
		return Measurement{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			ErrIncompatibleUnit, from.symbol, from.quantity, to.symbol, to.quantity)
	}
	if m.Unit == target {
		return m, nil
	}
	base := m.Value*from.coef + from.offset
	return Measurement{Value: (base - to.offset) / to.coef, Unit: target}, nil
}

// Equal reports whether m and other denote the same physical value.
// other is converted to m's unit and compared with a relative tolerance of 1e-9.
// Measurements of different quantities are never equal.
func (m Measurement) Equal(other Measurement) bool {
	if m == other {
		return true
	}
	conv, err := other.Convert(m.Unit)
	if err != nil {
		return false
	}
	if m.Value == conv.Value {
		return true
	}
	diff := math.Abs(m.Value - conv.Value)
	scale := math.Max(math.Abs(m.Value), math.Abs(conv.Value))
	return diff <= 1e-9*scale
}

// String formats the measurement as "value symbol".
func (m Measurement) String() string {
	return fmt.Sprintf("%g %s", m.Value, m.Unit.Symbol())
}
