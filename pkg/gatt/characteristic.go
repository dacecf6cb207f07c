package gatt

// Characteristic is a decoded GATT characteristic value.
//
// Name and UUID are constant per concrete type. Encode produces the exact
// wire bytes a decoder accepts; read-only types return an error matching
// wire.ErrUnsupported.
type Characteristic interface {
	Name() string
	UUID() UUID
	Encode() ([]byte, error)
	Equal(other Characteristic) bool
}

// DecodeFunc decodes a characteristic value from its wire bytes.
type DecodeFunc func(data []byte) (Characteristic, error)

// Definition binds a characteristic type's identity to its decoder.
type Definition struct {
	Name   string
	UUID   UUID
	Decode DecodeFunc

	// ReadOnly marks types whose Encode always fails with wire.ErrUnsupported.
	ReadOnly bool
}

// Decoder adapts a typed decoder into a DecodeFunc.
func Decoder[T Characteristic](decode func([]byte) (T, error)) DecodeFunc {
	return func(data []byte) (Characteristic, error) {
		v, err := decode(data)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
