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

// Package merge implements spec.md §4.8: merging two lattice/environment
// states at CFG joins.
package merge

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
)

// Bool implements spec.md §4.8's merge_bool, the five-step algorithm for
// merging two boolean values tracked in two different environments into one
// value in the merged environment.
func Bool(b1 boolengine.Formula, env1 lattice.Environment, b2 boolengine.Formula, env2 lattice.Environment, merged lattice.Environment) boolengine.Formula {
	if b1 == b2 {
		return b1
	}

	arena := merged.Engine()
	m := arena.MkAtomic()

	if env1.FlowConditionImplies(b1) && env2.FlowConditionImplies(b2) {
		merged.AddToFlowCondition(m)
		return m
	}
	if env1.FlowConditionImplies(arena.MkNot(b1)) && env2.FlowConditionImplies(arena.MkNot(b2)) {
		merged.AddToFlowCondition(arena.MkNot(m))
		return m
	}

	f1, f2 := env1.FlowConditionToken(), env2.FlowConditionToken()
	lhs := arena.MkAnd(f1, arena.MkIff(m, b1))
	rhs := arena.MkAnd(f2, arena.MkIff(m, b2))
	merged.AddToFlowCondition(arena.MkOr(lhs, rhs))
	return m
}

// PointerValue implements spec.md §4.8's init_pointer_null_state applied to
// a join: merges v1 and v2's (is_known, is_null) pairs via Bool, returning
// (merged value, true) only when both inputs were tracked pointers;
// otherwise (nil, false) for "no custom merge".
func PointerValue(v1 *lattice.PointerValue, env1 lattice.Environment, v2 *lattice.PointerValue, env2 lattice.Environment, merged lattice.Environment) (*lattice.PointerValue, bool) {
	if v1 == nil || v2 == nil || !v1.Initialized || !v2.Initialized {
		return nil, false
	}
	return &lattice.PointerValue{
		IsKnown:     Bool(v1.IsKnown, env1, v2.IsKnown, env2, merged),
		IsNull:      Bool(v1.IsNull, env1, v2.IsNull, env2, merged),
		Initialized: true,
	}, true
}
