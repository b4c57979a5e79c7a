// SPDX-License-Identifier: MIT

package fuzzy

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlogic/facts"
)

// Sentinel errors for the fuzzy package. Every message is prefixed with
// "fuzzy:"; callers match with errors.Is.
var (
	// ErrInputMissing indicates that a crisp input required by a rule was not
	// supplied. It is the same sentinel as facts.ErrInputMissing, so either
	// name matches.
	ErrInputMissing = facts.ErrInputMissing

	// ErrUnderdetermined indicates the aggregated consequent membership is
	// zero everywhere: no rule fired with positive strength.
	ErrUnderdetermined = errors.New("fuzzy: underdetermined output")

	// ErrInvalidUniverse indicates a non-finite bound, Step <= 0, Max <= Min,
	// or a sample count above MaxSamples.
	ErrInvalidUniverse = errors.New("fuzzy: invalid universe")

	// ErrInvalidTerm indicates a triangle violating a <= b <= c, a non-finite
	// parameter, or an empty/duplicate term name.
	ErrInvalidTerm = errors.New("fuzzy: invalid term")

	// ErrInvalidVariable indicates an empty name, unknown role or no terms.
	ErrInvalidVariable = errors.New("fuzzy: invalid variable")

	// ErrDuplicateVariable indicates a second registration under one name.
	ErrDuplicateVariable = errors.New("fuzzy: duplicate variable")

	// ErrUnknownVariable indicates a reference to an unregistered variable.
	ErrUnknownVariable = errors.New("fuzzy: unknown variable")

	// ErrUnknownTerm indicates a reference to a term the variable lacks.
	ErrUnknownTerm = errors.New("fuzzy: unknown term")

	// ErrInvalidRule indicates a malformed rule: nil antecedent, empty AND/OR,
	// role mismatch or duplicate id.
	ErrInvalidRule = errors.New("fuzzy: invalid rule")

	// ErrNilRegistry is returned when NewEngine receives a nil *Registry.
	ErrNilRegistry = errors.New("fuzzy: registry is nil")

	// ErrNilInputs is returned when Infer receives a nil reader.
	ErrNilInputs = errors.New("fuzzy: inputs are nil")

	// ErrShapeMismatch indicates sample and membership slices of different length.
	ErrShapeMismatch = errors.New("fuzzy: samples and memberships differ in length")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("fuzzy: invalid option supplied")
)

// VariableError reports the failure of one consequent variable's inference.
type VariableError struct {
	// Variable is the consequent whose output could not be computed.
	Variable string

	// Err wraps ErrInputMissing or ErrUnderdetermined.
	Err error
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("fuzzy: %s: %v", e.Variable, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *VariableError) Unwrap() error { return e.Err }
