// Package scaledexpr implements a fixed-point calculator with the arithmetic
// of a 256-bit integer machine.
//
// Every value is an arbitrary-precision integer together with a scale, the
// number of implied decimal places. "1e18" is one at 18 decimals, not the
// integer ten to the eighteenth, so "1e18 + 1e18" is two. Scales add under
// multiplication, subtract under division, and must agree under addition and
// subtraction, except that a bare integer literal adopts the scale of the
// other operand: "x + 1" adds one unit at x's precision.
//
// Division truncates, rounding toward negative infinity by default or toward
// positive infinity on request, and the truncated remainder of the outermost
// division is reported as precision loss. Bounds like "type(uint8).max" make
// the evaluator check the final integer result against that type and report
// what the machine would have wrapped it to.
//
// An expression may end in a single comparison, "a * b >= c", in which case
// the result is a boolean. Operands of a comparison may have different scales;
// by default they are normalized to the larger one.
//
package scaledexpr
