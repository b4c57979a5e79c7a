// SPDX-License-Identifier: MIT

package knowledge

import "errors"

// Sentinel errors for knowledge-base loading.
var (
	// ErrInvalidDocument indicates malformed YAML, an unknown field or a
	// structurally invalid section.
	ErrInvalidDocument = errors.New("knowledge: invalid document")

	// ErrUnknownKind indicates a missing or unsupported "kind".
	ErrUnknownKind = errors.New("knowledge: unknown kind")

	// ErrKindMismatch indicates a loader called on a document of another kind.
	ErrKindMismatch = errors.New("knowledge: kind mismatch")

	// ErrDuplicateBase indicates two bases of one kind sharing a name.
	ErrDuplicateBase = errors.New("knowledge: duplicate base")

	// ErrNotFound indicates a lookup of a base that is not loaded.
	ErrNotFound = errors.New("knowledge: base not found")

	// ErrOutOfRange indicates a crisp input outside its variable's universe.
	ErrOutOfRange = errors.New("knowledge: input out of range")
)
