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

// Package flow implements spec.md §4.6: the flow-sensitive transfer that
// initializes and propagates the (is_known, is_null) boolean pair on
// pointer values, and the null-check semantics built on top of it.
package flow

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/kiwiwarmnfuzzy/ptrnull/resugar"
)

// InitNullPointer sets pv to definitely null (spec.md §4.6 "Null pointer
// literal"): is_known=true, is_null=true.
func InitNullPointer(pv *lattice.PointerValue) {
	pv.IsKnown = boolengine.True{}
	pv.IsNull = boolengine.True{}
	pv.Initialized = true
}

// InitNotNullPointer sets pv to definitely non-null (spec.md §4.6
// "Address-of expression"): is_known=true, is_null=false.
func InitNotNullPointer(pv *lattice.PointerValue) {
	pv.IsKnown = boolengine.True{}
	pv.IsNull = boolengine.False{}
	pv.Initialized = true
}

// InitNullablePointer sets pv to tracked but undetermined: is_known=true,
// is_null a fresh atomic boolean the flow condition can later constrain
// (e.g. via the null-comparison rule or an implicit pointer-to-bool cast on
// an `if` condition).
func InitNullablePointer(pv *lattice.PointerValue, arena boolengine.Engine) {
	pv.IsKnown = boolengine.True{}
	pv.IsNull = arena.MkAtomic()
	pv.Initialized = true
}

// InitUnknownPointer sets pv to untracked (spec.md §3 "is_known = false ⇒
// nullability not tracked at this point").
func InitUnknownPointer(pv *lattice.PointerValue) {
	pv.IsKnown = boolengine.False{}
	pv.IsNull = boolengine.False{}
	pv.Initialized = true
}

// InitFromNullability initializes pv by dispatching on nk, the three ways
// spec.md §4.6 names: init_not_null_pointer, init_nullable_pointer, or
// init_unknown_pointer.
func InitFromNullability(pv *lattice.PointerValue, nk kind.Nullability, arena boolengine.Engine) {
	switch nk {
	case kind.NonNull:
		InitNotNullPointer(pv)
	case kind.Nullable:
		InitNullablePointer(pv, arena)
	default:
		InitUnknownPointer(pv)
	}
}

// GetPointerNullability implements spec.md §4.6's get_pointer_nullability:
// take the nullability sugar directly on e's type; if Unspecified (common
// for template instantiations), fall back to the first entry of the
// lattice's ExprNullability vector for e.
func GetPointerNullability(e cxxast.Expr, lat *lattice.Lattice) kind.Nullability {
	if vec, err := resugar.GetAnnotations(e.Type(), nil); err == nil && len(vec) > 0 && vec[0] != kind.Unspecified {
		return vec[0]
	}
	if vec, ok := lat.ExprNullability.Load(e); ok && len(vec) > 0 {
		return vec[0]
	}
	return kind.Unspecified
}

// PointerToBoolValue implements spec.md §4.6's implicit pointer-to-bool
// cast: the cast's boolean value is ¬is_null of the underlying pointer
// value. Returns nil if pv is nil or uninitialized.
func PointerToBoolValue(pv *lattice.PointerValue, arena boolengine.Engine) boolengine.Formula {
	if pv == nil || !pv.Initialized {
		return nil
	}
	return arena.MkNot(pv.IsNull)
}

// declFor extracts the declaration e refers to, for the declaration-level
// override lookup of spec.md §4.6 ("looked up via declaration reference or
// member access").
func declFor(e cxxast.Expr) any {
	switch v := e.(type) {
	case *cxxast.DeclRefExpr:
		return v.Decl
	case *cxxast.MemberExpr:
		if v.Member != nil {
			return v.Member
		}
		return nil
	default:
		return nil
	}
}
