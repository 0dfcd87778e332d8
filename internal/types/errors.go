package types

import "fmt"

// ErrorKind classifies the failures the core can surface. None of
// them are recoverable: each one indicates either an engine bug or
// program data that no real machine could execute.
type ErrorKind uint8

const (
	// InvalidRegister is returned when a register name is used with
	// the wrong width (or is not a register at all).
	InvalidRegister ErrorKind = iota + 1
	// IllegalOpcode is returned when the fetched opcode has no
	// meaning on the SM83.
	IllegalOpcode
	// OutOfRangeAddress is raised if the bus fails to classify an
	// address. The bus is total over 16 bits, so seeing this means
	// the decoder itself is broken.
	OutOfRangeAddress
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidRegister:
		return "invalid register"
	case IllegalOpcode:
		return "illegal opcode"
	case OutOfRangeAddress:
		return "out of range address"
	}
	return fmt.Sprintf("unknown error kind %d", uint8(k))
}

// Error is the error type raised by the core.
type Error struct {
	Kind     ErrorKind
	Opcode   uint8  // offending byte (IllegalOpcode)
	Address  uint16 // address of the opcode or access
	Register string // offending register name (InvalidRegister)
}

var (
	// ErrInvalidRegister matches any InvalidRegister error with errors.Is.
	ErrInvalidRegister = &Error{Kind: InvalidRegister}
	// ErrIllegalOpcode matches any IllegalOpcode error with errors.Is.
	ErrIllegalOpcode = &Error{Kind: IllegalOpcode}
	// ErrOutOfRangeAddress matches any OutOfRangeAddress error with errors.Is.
	ErrOutOfRangeAddress = &Error{Kind: OutOfRangeAddress}
)

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidRegister:
		return fmt.Sprintf("%s: %s", e.Kind, e.Register)
	case IllegalOpcode:
		return fmt.Sprintf("%s 0x%02X at 0x%04X", e.Kind, e.Opcode, e.Address)
	case OutOfRangeAddress:
		return fmt.Sprintf("%s 0x%04X", e.Kind, e.Address)
	}
	return e.Kind.String()
}

// Is reports whether target is an *Error of the same kind, so that
// the exported sentinels can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
