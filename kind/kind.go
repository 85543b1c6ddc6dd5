// Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kind defines the three-valued nullability annotation and the
// ordered vector of such annotations that the rest of the analyzer attaches
// to pointer positions within a type.
package kind

import "strings"

// Nullability is the annotation recorded for a single pointer position.
type Nullability int

const (
	// Unspecified means no nullability attribute was observed for this
	// pointer position; it carries no safety guarantee either way.
	Unspecified Nullability = iota
	// NonNull means the pointer position is annotated as never holding null.
	NonNull
	// Nullable means the pointer position is annotated as possibly holding null.
	Nullable
)

// Spelling returns the surface-syntax attribute spelling for k.
func (k Nullability) Spelling() string {
	switch k {
	case NonNull:
		return "_Nonnull"
	case Nullable:
		return "_Nullable"
	default:
		return "_Null_unspecified"
	}
}

func (k Nullability) String() string {
	return k.Spelling()
}

// Vector is an ordered sequence of annotations, one per pointer position in
// some associated type, outer-to-inner in traversal order.
type Vector []Nullability

// String renders v as "[_Nonnull, _Nullable]".
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, k := range v {
		parts[i] = k.Spelling()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether v and other contain the same annotations in the same
// order.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// UnspecifiedVector returns a fresh vector of length n with every entry Unspecified.
// Transfer rules use this whenever a length self-check fails (spec §4.5) or a
// cast's destination has no correspondence with the source (spec §4.5 Cast).
func UnspecifiedVector(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = Unspecified
	}
	return v
}

// Clone returns a copy of v so callers can mutate the head/tail without
// aliasing the original vector, mirroring how the teacher's annotation.Val
// values are passed by value rather than shared by pointer.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
