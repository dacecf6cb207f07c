package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/flags"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/resolution"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/units"
	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

const (
	awePointsPresent uint8 = 1 << 0
	aweEnergyPresent uint8 = 1 << 1
)

// AWEWorkoutInformation is the vendor AWE Workout Information characteristic.
// It is notify-only.
type AWEWorkoutInformation struct {
	Points         *uint16            `json:"points,omitempty"`
	EnergyExpended *units.Measurement `json:"energy_expended,omitempty"` // kJ
}

var aweWorkoutInformationUUID = gatt.MustParseUUID("4B486402-6E6F-7274-6870-6F6C65656E67")

// Name returns "AWE Workout Information".
func (a *AWEWorkoutInformation) Name() string { return "AWE Workout Information" }

// UUID returns 4B486402-6E6F-7274-6870-6F6C65656E67.
func (a *AWEWorkoutInformation) UUID() gatt.UUID { return aweWorkoutInformationUUID }

// DecodeAWEWorkoutInformation decodes an AWE Workout Information notification.
func DecodeAWEWorkoutInformation(data []byte) (*AWEWorkoutInformation, error) {
	c := wire.NewCursor(data)
	raw, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	f := flags.FromRaw(raw)

	var a AWEWorkoutInformation
	if f.Contains(awePointsPresent) {
		v, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		a.Points = &v
	}
	if a.EnergyExpended, err = readUint16If(c, f.Contains(aweEnergyPresent), resolution.One, units.Kilojoules); err != nil {
		return nil, err
	}
	return &a, nil
}

// Encode is not supported.
func (a *AWEWorkoutInformation) Encode() ([]byte, error) {
	return nil, wire.Unsupported(a.Name())
}

// Equal compares points and energy.
func (a *AWEWorkoutInformation) Equal(other gatt.Characteristic) bool {
	o, ok := other.(*AWEWorkoutInformation)
	return ok && equalPtr(a.Points, o.Points) && equalMeasurement(a.EnergyExpended, o.EnergyExpended)
}
