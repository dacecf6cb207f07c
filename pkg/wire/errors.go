package wire

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by DecodeError and EncodeError through errors.Is.
var (
	// ErrTruncated indicates the buffer is shorter than the layout requires.
	ErrTruncated = errors.New("wire: truncated data")

	// ErrInvalidString indicates bytes that are not valid UTF-8 where a string was expected.
	ErrInvalidString = errors.New("wire: invalid string value")

	// ErrInvalidTag indicates an unrecognized type tag or UUID.
	ErrInvalidTag = errors.New("wire: invalid tag")

	// ErrInvalidValue indicates a field value rejected by type-specific validation.
	ErrInvalidValue = errors.New("wire: invalid value")

	// ErrUnsupported indicates the message type cannot be encoded.
	ErrUnsupported = errors.New("wire: encoding not supported")

	// ErrOutOfBounds indicates a value outside its documented range.
	ErrOutOfBounds = errors.New("wire: value out of bounds")

	// ErrFixedLength indicates a blob field that is not exactly the required length.
	ErrFixedLength = errors.New("wire: fixed length mismatch")
)

// DecodeErrorKind classifies a decode failure.
type DecodeErrorKind uint8

const (
	// DecodeTruncated means the input ended before the layout was complete.
	DecodeTruncated DecodeErrorKind = iota + 1

	// DecodeInvalidString means a string field was not valid UTF-8.
	DecodeInvalidString

	// DecodeInvalidTag means dispatch found no decoder for the tag or UUID.
	DecodeInvalidTag

	// DecodeInvalidValue means a field failed type-specific validation.
	DecodeInvalidValue
)

// String returns the kind name.
func (k DecodeErrorKind) String() string {
	switch k {
	case DecodeTruncated:
		return "TRUNCATED"
	case DecodeInvalidString:
		return "INVALID_STRING"
	case DecodeInvalidTag:
		return "INVALID_TAG"
	case DecodeInvalidValue:
		return "INVALID_VALUE"
	default:
		return "UNKNOWN"
	}
}

func (k DecodeErrorKind) sentinel() error {
	switch k {
	case DecodeTruncated:
		return ErrTruncated
	case DecodeInvalidString:
		return ErrInvalidString
	case DecodeInvalidTag:
		return ErrInvalidTag
	case DecodeInvalidValue:
		return ErrInvalidValue
	default:
		return nil
	}
}

// DecodeError describes why a byte buffer could not be decoded.
type DecodeError struct {
	Kind DecodeErrorKind

	// Field names the field being decoded, when known.
	Field string

	// Offset is the cursor position at which the failure occurred.
	Offset int

	// Need and Remaining are set for DecodeTruncated.
	Need      int
	Remaining int

	// Tag is set for DecodeInvalidTag.
	Tag string

	// Detail is a human-readable explanation for DecodeInvalidValue.
	Detail string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	switch e.Kind {
	case DecodeTruncated:
		if e.Field != "" {
			return fmt.Sprintf("%v: %s needs %d bytes at offset %d, %d remaining",
				ErrTruncated, e.Field, e.Need, e.Offset, e.Remaining)
		}
		return fmt.Sprintf("%v: need %d bytes at offset %d, %d remaining",
			ErrTruncated, e.Need, e.Offset, e.Remaining)
	case DecodeInvalidString:
		if e.Field != "" {
			return fmt.Sprintf("%v: %s", ErrInvalidString, e.Field)
		}
		return ErrInvalidString.Error()
	case DecodeInvalidTag:
		return fmt.Sprintf("%v: %s", ErrInvalidTag, e.Tag)
	case DecodeInvalidValue:
		if e.Field != "" {
			return fmt.Sprintf("%v: %s: %s", ErrInvalidValue, e.Field, e.Detail)
		}
		return fmt.Sprintf("%v: %s", ErrInvalidValue, e.Detail)
	default:
		return "wire: decode error"
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *DecodeError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Truncated returns a DecodeTruncated error.
func Truncated(field string, offset, need, remaining int) *DecodeError {
	return &DecodeError{
		Kind:      DecodeTruncated,
		Field:     field,
		Offset:    offset,
		Need:      need,
		Remaining: remaining,
	}
}

// InvalidString returns a DecodeInvalidString error for field.
func InvalidString(field string) *DecodeError {
	return &DecodeError{Kind: DecodeInvalidString, Field: field}
}

// InvalidTag returns a DecodeInvalidTag error for an unknown tag or UUID.
func InvalidTag(tag string) *DecodeError {
	return &DecodeError{Kind: DecodeInvalidTag, Tag: tag}
}

// InvalidValue returns a DecodeInvalidValue error for field.
func InvalidValue(field, format string, args ...any) *DecodeError {
	return &DecodeError{
		Kind:   DecodeInvalidValue,
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Range is an inclusive numeric range.
type Range struct {
	Min int64
	Max int64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// String returns the range as "min...max".
func (r Range) String() string {
	return fmt.Sprintf("%d...%d", r.Min, r.Max)
}

// EncodeErrorKind classifies an encode failure.
type EncodeErrorKind uint8

const (
	// EncodeUnsupported means the message type is read-only.
	EncodeUnsupported EncodeErrorKind = iota + 1

	// EncodeOutOfBounds means a value is outside its documented range.
	EncodeOutOfBounds

	// EncodeFixedLengthMismatch means a blob is not exactly the required length.
	EncodeFixedLengthMismatch

	// EncodeInvalidValue means a value cannot be represented on the wire.
	EncodeInvalidValue
)

// String returns the kind name.
func (k EncodeErrorKind) String() string {
	switch k {
	case EncodeUnsupported:
		return "UNSUPPORTED"
	case EncodeOutOfBounds:
		return "OUT_OF_BOUNDS"
	case EncodeFixedLengthMismatch:
		return "FIXED_LENGTH_MISMATCH"
	case EncodeInvalidValue:
		return "INVALID_VALUE"
	default:
		return "UNKNOWN"
	}
}

func (k EncodeErrorKind) sentinel() error {
	switch k {
	case EncodeUnsupported:
		return ErrUnsupported
	case EncodeOutOfBounds:
		return ErrOutOfBounds
	case EncodeFixedLengthMismatch:
		return ErrFixedLength
	case EncodeInvalidValue:
		return ErrInvalidValue
	default:
		return nil
	}
}

// EncodeError describes why a value could not be encoded.
type EncodeError struct {
	Kind EncodeErrorKind

	// Field names the offending field. For EncodeUnsupported it names the message type.
	Field string

	// Valid and Unit are set for EncodeOutOfBounds.
	Valid Range
	Unit  string

	// Expected and Actual are set for EncodeFixedLengthMismatch.
	Expected int
	Actual   int

	// Detail is a human-readable explanation for EncodeInvalidValue.
	Detail string

	// Err is an optional underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	switch e.Kind {
	case EncodeUnsupported:
		return fmt.Sprintf("%v: %s", ErrUnsupported, e.Field)
	case EncodeOutOfBounds:
		if e.Unit != "" {
			return fmt.Sprintf("%v: %s must be between %s %s", ErrOutOfBounds, e.Field, e.Valid, e.Unit)
		}
		return fmt.Sprintf("%v: %s must be between %s", ErrOutOfBounds, e.Field, e.Valid)
	case EncodeFixedLengthMismatch:
		return fmt.Sprintf("%v: %s must be %d bytes, got %d", ErrFixedLength, e.Field, e.Expected, e.Actual)
	case EncodeInvalidValue:
		if e.Err != nil {
			return fmt.Sprintf("%v: %s: %s: %v", ErrInvalidValue, e.Field, e.Detail, e.Err)
		}
		return fmt.Sprintf("%v: %s: %s", ErrInvalidValue, e.Field, e.Detail)
	default:
		return "wire: encode error"
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *EncodeError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Unwrap returns the underlying cause, if any.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Unsupported returns an EncodeUnsupported error for the named message type.
func Unsupported(name string) *EncodeError {
	return &EncodeError{Kind: EncodeUnsupported, Field: name}
}

// OutOfBounds returns an EncodeOutOfBounds error carrying the valid range and unit label.
func OutOfBounds(field string, valid Range, unit string) *EncodeError {
	return &EncodeError{Kind: EncodeOutOfBounds, Field: field, Valid: valid, Unit: unit}
}

// FixedLengthMismatch returns an EncodeFixedLengthMismatch error.
func FixedLengthMismatch(field string, expected, actual int) *EncodeError {
	return &EncodeError{Kind: EncodeFixedLengthMismatch, Field: field, Expected: expected, Actual: actual}
}

// InvalidEncodeValue returns an EncodeInvalidValue error wrapping cause.
func InvalidEncodeValue(field, detail string, cause error) *EncodeError {
	return &EncodeError{Kind: EncodeInvalidValue, Field: field, Detail: detail, Err: cause}
}
