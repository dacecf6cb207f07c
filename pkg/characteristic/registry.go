package characteristic

import (
	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
)

// Compile-time interface checks.
var (
	_ gatt.Characteristic = (*Age)(nil)
	_ gatt.Characteristic = (*WindChill)(nil)
	_ gatt.Characteristic = (*MeasurementInterval)(nil)
	_ gatt.Characteristic = (*ApparentWindSpeed)(nil)
	_ gatt.Characteristic = (*Position2D)(nil)
	_ gatt.Characteristic = (*Rainfall)(nil)
	_ gatt.Characteristic = (*EmailAddress)(nil)
	_ gatt.Characteristic = (*IndoorBikeData)(nil)
	_ gatt.Characteristic = (*RowerData)(nil)
	_ gatt.Characteristic = (*AWEWorkoutInformation)(nil)
)

// Definitions returns the definition of every characteristic in this package.
func Definitions() []gatt.Definition {
	return []gatt.Definition{
		{Name: "Age", UUID: ageUUID, Decode: gatt.Decoder(DecodeAge)},
		{Name: "Wind Chill", UUID: windChillUUID, Decode: gatt.Decoder(DecodeWindChill)},
		{Name: "Measurement Interval", UUID: measurementIntervalUUID, Decode: gatt.Decoder(DecodeMeasurementInterval)},
		{Name: "Apparent Wind Speed", UUID: apparentWindSpeedUUID, Decode: gatt.Decoder(DecodeApparentWindSpeed)},
		{Name: "Position 2D", UUID: position2DUUID, Decode: gatt.Decoder(DecodePosition2D)},
		{Name: "Rainfall", UUID: rainfallUUID, Decode: gatt.Decoder(DecodeRainfall)},
		{Name: "Email Address", UUID: emailAddressUUID, Decode: gatt.Decoder(DecodeEmailAddress)},
		{Name: "Indoor Bike Data", UUID: indoorBikeDataUUID, Decode: gatt.Decoder(DecodeIndoorBikeData), ReadOnly: true},
		{Name: "Rower Data", UUID: rowerDataUUID, Decode: gatt.Decoder(DecodeRowerData), ReadOnly: true},
		{Name: "AWE Workout Information", UUID: aweWorkoutInformationUUID, Decode: gatt.Decoder(DecodeAWEWorkoutInformation), ReadOnly: true},
	}
}

var defaultRegistry = mustRegistry()

func mustRegistry() *gatt.Registry {
	r, err := gatt.NewRegistry(Definitions()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Registry returns the immutable registry of every characteristic in this package.
func Registry() *gatt.Registry {
	return defaultRegistry
}
