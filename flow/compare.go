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
	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
)

// VisitComparison implements spec.md §4.6 "Equality / inequality between
// two pointers". cmp is the framework's modeled boolean for the comparison
// result; lhs and rhs must both be initialized pointer values, else this is
// a no-op (spec.md §4.6 names only the two-pointer case).
func VisitComparison(e *cxxast.BinaryOperator, env lattice.Environment, lhs, rhs *lattice.PointerValue, cmp boolengine.Formula) {
	if lhs == nil || rhs == nil || !lhs.Initialized || !rhs.Initialized {
		return
	}

	arena := env.Engine()
	var eq boolengine.Formula
	switch e.Op {
	case cxxast.BinaryEQ:
		eq = cmp
	case cxxast.BinaryNE:
		eq = arena.MkNot(cmp)
	default:
		return
	}
	ne := arena.MkNot(eq)
	ln, rn := lhs.IsNull, rhs.IsNull

	env.AddToFlowCondition(arena.MkImplies(arena.MkAnd(ln, rn), eq))
	env.AddToFlowCondition(arena.MkImplies(arena.MkAnd(ln, arena.MkNot(rn)), ne))
	env.AddToFlowCondition(arena.MkImplies(arena.MkAnd(arena.MkNot(ln), rn), ne))
}
