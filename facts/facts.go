// SPDX-License-Identifier: MIT

package facts

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Sentinel errors for fact access.
var (
	// ErrInputMissing indicates a numeric fact was read before it was supplied.
	ErrInputMissing = errors.New("facts: input missing")

	// ErrEmptyKey indicates an attempt to store a fact under the empty key.
	ErrEmptyKey = errors.New("facts: key is empty")

	// ErrNotFinite indicates a NaN or ±Inf measurement.
	ErrNotFinite = errors.New("facts: value is NaN or Inf")
)

// Reader is the boolean view of a Store consumed by rule engines.
type Reader interface {
	// Get reports the flag for key; unknown keys read as false.
	Get(key string) bool
}

// NumericReader is the numeric view of a Store consumed by fuzzy inference.
type NumericReader interface {
	// GetNumeric returns the measurement for key or an error wrapping
	// ErrInputMissing when it was never supplied.
	GetNumeric(key string) (float64, error)
}

// Store is the fact base of a single session.
type Store struct {
	flags   map[string]bool
	numeric map[string]float64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		flags:   make(map[string]bool),
		numeric: make(map[string]float64),
	}
}

// FromFlags builds a Store with every listed key asserted true.
func FromFlags(keys ...string) *Store {
	st := New()
	for _, k := range keys {
		_ = st.Set(k, true)
	}

	return st
}

// Set records a boolean fact. Setting the same key twice keeps the last value.
func (s *Store) Set(key string, value bool) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.flags[key] = value

	return nil
}

// Get returns the boolean fact for key, false when absent.
func (s *Store) Get(key string) bool {
	return s.flags[key]
}

// SetNumeric records a crisp measurement.
func (s *Store) SetNumeric(key string, value float64) error {
	if key == "" {
		return ErrEmptyKey
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %q", ErrNotFinite, key)
	}
	s.numeric[key] = value

	return nil
}

// GetNumeric returns the measurement for key.
func (s *Store) GetNumeric(key string) (float64, error) {
	v, ok := s.numeric[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInputMissing, key)
	}

	return v, nil
}

// HasNumeric reports whether a measurement was supplied for key.
func (s *Store) HasNumeric(key string) bool {
	_, ok := s.numeric[key]
	return ok
}

// Asserted returns the keys whose flag is true, sorted.
func (s *Store) Asserted() []string {
	out := make([]string, 0, len(s.flags))
	for k, v := range s.flags {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out
}

// Keys returns every boolean key that was set (true or false), sorted.
func (s *Store) Keys() []string {
	out := make([]string, 0, len(s.flags))
	for k := range s.flags {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// NumericKeys returns every measurement key, sorted.
func (s *Store) NumericKeys() []string {
	out := make([]string, 0, len(s.numeric))
	for k := range s.numeric {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Clone returns a deep copy, so a template store can seed many sessions.
func (s *Store) Clone() *Store {
	c := &Store{
		flags:   make(map[string]bool, len(s.flags)),
		numeric: make(map[string]float64, len(s.numeric)),
	}
	for k, v := range s.flags {
		c.flags[k] = v
	}
	for k, v := range s.numeric {
		c.numeric[k] = v
	}

	return c
}
