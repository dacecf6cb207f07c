package provisioning

import (
	"fmt"
	"strings"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/flags"
)

// Algorithms is the set of algorithms a device supports.
type Algorithms uint16

// SupportsFIPSP256 marks FIPS P-256 Elliptic Curve support.
const SupportsFIPSP256 Algorithms = 1 << 0

// Has reports whether a contains every bit of mask.
func (a Algorithms) Has(mask Algorithms) bool { return flags.Contains(a, mask) }

// PublicKeyTypes is the set of public key types a device supports.
type PublicKeyTypes uint8

// PublicKeyOOBAvailable marks that public key OOB information is available.
const PublicKeyOOBAvailable PublicKeyTypes = 1 << 0

// Has reports whether p contains every bit of mask.
func (p PublicKeyTypes) Has(mask PublicKeyTypes) bool { return flags.Contains(p, mask) }

// StaticOOBTypes is the set of static OOB types a device supports.
type StaticOOBTypes uint8

// StaticOOBAvailable marks that static OOB information is available.
const StaticOOBAvailable StaticOOBTypes = 1 << 0

// Has reports whether s contains every bit of mask.
func (s StaticOOBTypes) Has(mask StaticOOBTypes) bool { return flags.Contains(s, mask) }

// OutputAction is an output OOB action. Its value is the bit index used in
// OutputActions and the action value used in a Start PDU.
type OutputAction uint8

// Output OOB actions.
const (
	Blink OutputAction = iota
	Beep
	Vibrate
	OutputNumeric
	OutputAlphanumeric
)

var outputActionNames = [...]string{"BLINK", "BEEP", "VIBRATE", "NUMERIC", "ALPHANUMERIC"}

// Valid reports whether a is a defined output action.
func (a OutputAction) Valid() bool { return int(a) < len(outputActionNames) }

// String returns the action name.
func (a OutputAction) String() string {
	if a.Valid() {
		return outputActionNames[a]
	}
	return fmt.Sprintf("RFU(%d)", uint8(a))
}

// OutputActions is the set of output OOB actions a device supports.
type OutputActions uint16

// NewOutputActions returns the set containing actions.
func NewOutputActions(actions ...OutputAction) OutputActions {
	var s OutputActions
	for _, a := range actions {
		s = s.With(a, true)
	}
	return s
}

// Has reports whether the set contains action.
func (s OutputActions) Has(action OutputAction) bool {
	return flags.Contains(s, OutputActions(1)<<action)
}

// With returns the set with action added or removed.
func (s OutputActions) With(action OutputAction, on bool) OutputActions {
	return flags.Toggle(s, OutputActions(1)<<action, on)
}

// String lists the actions in bit order, such as "BLINK|BEEP".
func (s OutputActions) String() string {
	var names []string
	for a := Blink; a.Valid(); a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// InputAction is an input OOB action. Its value is the bit index used in
// InputActions and the action value used in a Start PDU.
type InputAction uint8

// Input OOB actions.
const (
	Push InputAction = iota
	Twist
	InputNumeric
	InputAlphanumeric
)

var inputActionNames = [...]string{"PUSH", "TWIST", "NUMERIC", "ALPHANUMERIC"}

// Valid reports whether a is a defined input action.
func (a InputAction) Valid() bool { return int(a) < len(inputActionNames) }

// String returns the action name.
func (a InputAction) String() string {
	if a.Valid() {
		return inputActionNames[a]
	}
	return fmt.Sprintf("RFU(%d)", uint8(a))
}

// InputActions is the set of input OOB actions a device supports.
type InputActions uint16

// NewInputActions returns the set containing actions.
func NewInputActions(actions ...InputAction) InputActions {
	var s InputActions
	for _, a := range actions {
		s = s.With(a, true)
	}
	return s
}

// Has reports whether the set contains action.
func (s InputActions) Has(action InputAction) bool {
	return flags.Contains(s, InputActions(1)<<action)
}

// With returns the set with action added or removed.
func (s InputActions) With(action InputAction, on bool) InputActions {
	return flags.Toggle(s, InputActions(1)<<action, on)
}

// String lists the actions in bit order, such as "PUSH|TWIST".
func (s InputActions) String() string {
	var names []string
	for a := Push; a.Valid(); a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}
