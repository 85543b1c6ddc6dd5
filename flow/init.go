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

package flow

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/kiwiwarmnfuzzy/ptrnull/pointer"
)

// VisitNullPointerLiteral implements spec.md §4.6 "Null pointer literal":
// ensures e has a bound pointer value and marks it definitely null.
func VisitNullPointerLiteral(e *cxxast.NullPointerLiteralExpr, env lattice.Environment) {
	pv, ok := env.ValueForExpr(e)
	if !ok {
		pv = env.CreateValue(e.Ty)
		env.SetValueForExpr(e, pv)
	}
	InitNullPointer(pv)
}

// VisitAddressOf implements spec.md §4.6 "Address-of expression": ensures
// the `&x` result has a bound pointer value and marks it definitely
// non-null.
func VisitAddressOf(e *cxxast.UnaryOperator, env lattice.Environment) {
	if e.Op != cxxast.UnaryAddrOf {
		return
	}
	pv, ok := env.ValueForExpr(e)
	if !ok {
		pv = env.CreateValue(e.Ty)
		env.SetValueForExpr(e, pv)
	}
	InitNotNullPointer(pv)
}

// VisitCall implements spec.md §4.6 "Call expression": ensures a pointer
// value exists for e, initializes it from e's static nullability, and for
// glvalue calls allocates a fresh storage location at each visit.
func VisitCall(e *cxxast.CallExpr, env lattice.Environment, lat *lattice.Lattice) {
	if pointer.CountInType(e.Ty) == 0 {
		return
	}

	pv, ok := env.ValueForExpr(e)
	if !ok {
		pv = env.CreateValue(e.Ty)
		env.SetValueForExpr(e, pv)
	}
	if !pv.Initialized {
		InitFromNullability(pv, GetPointerNullability(e, lat), env.Engine())
	}

	if e.IsGlvalue {
		loc := env.CreateStorageLocation(e.Ty)
		env.SetStorageLocationForExpr(e, loc)
	}
}

// VisitArbitraryPointerExpr implements spec.md §4.6 "Arbitrary pointer
// expression": prefers a declaration-level nullability override, falling
// back to the expression's static nullability.
func VisitArbitraryPointerExpr(e cxxast.Expr, env lattice.Environment, lat *lattice.Lattice) {
	if pointer.CountInExpr(e) == 0 {
		return
	}

	pv, ok := env.ValueForExpr(e)
	if !ok {
		pv = env.CreateValue(e.Type())
		env.SetValueForExpr(e, pv)
	}
	if pv.Initialized {
		return
	}

	if decl := declFor(e); decl != nil {
		if override, ok := lat.DeclTopLevelNullability.Load(decl); ok {
			arena := env.Engine()
			pv.IsKnown = arena.MkOr(override.Nonnull, override.Nullable)
			pv.IsNull = arena.MkAtomic()
			pv.Initialized = true
			env.AddToFlowCondition(arena.MkImplies(override.Nonnull, arena.MkNot(pv.IsNull)))
			return
		}
	}

	InitFromNullability(pv, GetPointerNullability(e, lat), env.Engine())
}
