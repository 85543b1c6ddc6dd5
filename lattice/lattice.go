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

// Package lattice implements spec.md §3's data model and §5's lifecycle: the
// per-expression nullability map, per-declaration symbolic nullability
// variables, and the opaque pointer-value/storage-location handles the
// flow-sensitive transfer (package flow) and merge (package merge)
// operate over.
package lattice

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/util/orderedmap"
)

// PointerTypeNullability is the pair of opaque boolean handles a declaration
// carries into the arena (spec.md §3). nonnull ∧ nullable is unsatisfiable
// by how callers consult the pair, never by construction here.
type PointerTypeNullability struct {
	Nonnull  boolengine.Formula
	Nullable boolengine.Formula
}

// PointerValue is the opaque per-value null-state handle of spec.md §3.
// Initialized is false until some flow rule in package flow first touches
// this value; IsKnown/IsNull are meaningless until then.
type PointerValue struct {
	Initialized bool
	IsKnown     boolengine.Formula
	IsNull      boolengine.Formula
}

// StorageLocation is a minimal opaque handle for an addressable storage
// location, the thing taking the address of an expression refers to. The
// framework that supplies Environment owns its real representation; the
// core only needs a distinct identity per location (spec.md §4.6, "Call
// expression ... glvalues").
type StorageLocation struct {
	Type cxxtype.Type
}

// Lattice holds spec.md §3's two maps: ExprNullability (insert-if-absent,
// keyed by expression identity) and DeclTopLevelNullability (keyed by
// declaration identity). The zero value is not ready for use; call New.
type Lattice struct {
	ExprNullability         *orderedmap.OrderedMap[cxxast.Expr, kind.Vector]
	DeclTopLevelNullability *orderedmap.OrderedMap[any, PointerTypeNullability]
}

// New returns an empty Lattice, per spec.md §3's lifecycle ("created empty,
// grown monotonically").
func New() *Lattice {
	return &Lattice{
		ExprNullability:         orderedmap.New[cxxast.Expr, kind.Vector](),
		DeclTopLevelNullability: orderedmap.New[any, PointerTypeNullability](),
	}
}

// StoreExprNullability inserts v for e if e has no entry yet, implementing
// the "insert-if-absent" rule of spec.md §4.5 and the idempotence property
// of spec.md §8. Reports whether the insert happened.
func (l *Lattice) StoreExprNullability(e cxxast.Expr, v kind.Vector) bool {
	return l.ExprNullability.StoreIfAbsent(e, v)
}

// AssignNullabilityVariable implements spec.md §4.7: on first call for decl,
// allocate two fresh atomic booleans and remember them; later calls return
// the same pair.
func AssignNullabilityVariable(l *Lattice, decl any, arena boolengine.Engine) PointerTypeNullability {
	if existing, ok := l.DeclTopLevelNullability.Load(decl); ok {
		return existing
	}
	pair := PointerTypeNullability{
		Nonnull:  arena.MkAtomic(),
		Nullable: arena.MkAtomic(),
	}
	l.DeclTopLevelNullability.Store(decl, pair)
	return pair
}
