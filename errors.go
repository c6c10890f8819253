package scaledexpr

import "strconv"

// ErrorKind is a stable discriminant for the errors this package returns.
type ErrorKind int8

const (
	KindNone ErrorKind = iota
	KindLex
	KindParse
	KindScaleMismatch
	KindInvalidExponentiation
	KindDivisionByZero
	KindUndefinedVariable
	KindMissingScale
	KindNegativeScale
	KindComparisonScaleMismatch
)

var kindNames = [...]string{
	KindNone:                    "None",
	KindLex:                     "LexError",
	KindParse:                   "ParseError",
	KindScaleMismatch:           "ScaleMismatchError",
	KindInvalidExponentiation:   "InvalidExponentiationError",
	KindDivisionByZero:          "DivisionByZeroError",
	KindUndefinedVariable:       "UndefinedVariableError",
	KindMissingScale:            "MissingScaleError",
	KindNegativeScale:           "NegativeScaleError",
	KindComparisonScaleMismatch: "ComparisonScaleMismatchError",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Error is implemented by every error this package returns.
type Error interface {
	error
	// Kind returns the error's discriminant.
	Kind() ErrorKind
}

// InputError is an error with position information. Every error resulting from
// invalid syntax implements InputError, as do evaluation errors that can be
// attributed to a particular operator or name.
type InputError interface {
	Error
	// Pos returns the byte offset in the source of the token that caused the
	// error.
	Pos() int
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text the lexer was scanning when it found the problem.
	Text string
	// Scanning is the type of token the lexer was scanning. This may be
	// "number", "bound", or the empty string if a token kind hadn't been
	// decided.
	Scanning string
	// Reason describes what is wrong with the token.
	Reason string
	// Col is the offset of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	s := "invalid token"
	if err.Scanning != "" {
		s = "invalid " + err.Scanning + " token"
	}
	if err.Text != "" {
		s += " " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, s+": "+err.Reason)
}

func (err *LexError) Pos() int        { return err.Col }
func (err *LexError) Kind() ErrorKind { return KindLex }

// ParseError indicates a syntax error. It implements InputError.
type ParseError struct {
	// Col is the offset of the token where parsing failed.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *ParseError) Pos() int        { return err.Col }
func (err *ParseError) Kind() ErrorKind { return KindParse }

// ScaleMismatchError is an error from adding or subtracting values with
// different scales. It implements InputError.
type ScaleMismatchError struct {
	// Col is the position of the operator.
	Col int
	// Op is "+" or "-".
	Op string
	// Left and Right are the scales of the operands.
	Left, Right int
}

func (err *ScaleMismatchError) Error() string {
	return errpos(err.Col, "scale mismatch in "+strconv.Quote(err.Op)+": left has "+
		strconv.Itoa(err.Left)+" decimals, right has "+strconv.Itoa(err.Right))
}

func (err *ScaleMismatchError) Pos() int        { return err.Col }
func (err *ScaleMismatchError) Kind() ErrorKind { return KindScaleMismatch }

// Reasons for InvalidExponentiationError.
const (
	ReasonBaseNotTen   = "base must be literal 10"
	ReasonDimensionful = "exponent must be dimensionless"
	ReasonTooLarge     = "exponent too large"
	ReasonNegative     = "exponent must be non-negative"
)

// InvalidExponentiationError is an error from an exponentiation other than a
// power of literal 10. It implements InputError.
type InvalidExponentiationError struct {
	// Col is the position of the ** operator.
	Col int
	// Reason is one of the Reason constants.
	Reason string
}

func (err *InvalidExponentiationError) Error() string {
	return errpos(err.Col, "invalid exponentiation: "+err.Reason)
}

func (err *InvalidExponentiationError) Pos() int        { return err.Col }
func (err *InvalidExponentiationError) Kind() ErrorKind { return KindInvalidExponentiation }

// DivisionByZeroError is an error from a division with a zero divisor. It
// implements InputError.
type DivisionByZeroError struct {
	// Col is the position of the / operator.
	Col int
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero")
}

func (err *DivisionByZeroError) Pos() int        { return err.Col }
func (err *DivisionByZeroError) Kind() ErrorKind { return KindDivisionByZero }

// UndefinedVariableError is an error from a lookup for a variable that is
// missing from the evaluation variables. It implements InputError.
type UndefinedVariableError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *UndefinedVariableError) Error() string {
	return errpos(err.Col, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *UndefinedVariableError) Pos() int        { return err.Col }
func (err *UndefinedVariableError) Kind() ErrorKind { return KindUndefinedVariable }

// MissingScaleError is an error from a variable whose decimals were never set.
type MissingScaleError struct {
	Name string
}

func (err *MissingScaleError) Error() string {
	return "variable " + strconv.Quote(err.Name) + " has no decimals"
}

func (err *MissingScaleError) Kind() ErrorKind { return KindMissingScale }

// NegativeScaleError is an error from a variable with negative decimals.
type NegativeScaleError struct {
	Name  string
	Scale int
}

func (err *NegativeScaleError) Error() string {
	return "variable " + strconv.Quote(err.Name) + " has negative decimals " + strconv.Itoa(err.Scale)
}

func (err *NegativeScaleError) Kind() ErrorKind { return KindNegativeScale }

// ComparisonScaleMismatchError is an error from comparing values with
// different scales under StrictScales.
type ComparisonScaleMismatchError struct {
	// Op is the comparison operator.
	Op string
	// Left and Right are the scales of the operands.
	Left, Right int
}

func (err *ComparisonScaleMismatchError) Error() string {
	return "scale mismatch in comparison " + strconv.Quote(err.Op) + ": left has " +
		strconv.Itoa(err.Left) + " decimals, right has " + strconv.Itoa(err.Right)
}

func (err *ComparisonScaleMismatchError) Kind() ErrorKind { return KindComparisonScaleMismatch }

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*ScaleMismatchError)(nil)
	_ InputError = (*InvalidExponentiationError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
	_ InputError = (*UndefinedVariableError)(nil)
	_ Error      = (*MissingScaleError)(nil)
	_ Error      = (*NegativeScaleError)(nil)
	_ Error      = (*ComparisonScaleMismatchError)(nil)
)
