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

package fixture

import "github.com/kiwiwarmnfuzzy/ptrnull/boolengine"

// implies is a brute-force stand-in for the external SAT/SMT solver (spec.md
// §1): it enumerates every truth assignment of the atoms mentioned in facts
// and target, and reports whether every assignment satisfying all of facts
// also satisfies target. Fine for the small formulas unit tests build;
// never used by the core, which only ever calls through the Environment
// interface.
func implies(facts []boolengine.Formula, target boolengine.Formula) bool {
	atomSet := make(map[int]bool)
	for _, f := range facts {
		collectAtoms(f, atomSet)
	}
	collectAtoms(target, atomSet)

	atoms := make([]int, 0, len(atomSet))
	for id := range atomSet {
		atoms = append(atoms, id)
	}

	n := len(atoms)
	for mask := 0; mask < (1 << n); mask++ {
		assign := make(map[int]bool, n)
		for i, id := range atoms {
			assign[id] = mask&(1<<i) != 0
		}

		allFactsTrue := true
		for _, f := range facts {
			if !evalFormula(f, assign) {
				allFactsTrue = false
				break
			}
		}
		if allFactsTrue && !evalFormula(target, assign) {
			return false
		}
	}
	return true
}

func collectAtoms(f boolengine.Formula, set map[int]bool) {
	switch v := f.(type) {
	case boolengine.Atom:
		set[v.ID] = true
	case boolengine.Not:
		collectAtoms(v.X, set)
	case boolengine.And:
		collectAtoms(v.X, set)
		collectAtoms(v.Y, set)
	case boolengine.Or:
		collectAtoms(v.X, set)
		collectAtoms(v.Y, set)
	case boolengine.Iff:
		collectAtoms(v.X, set)
		collectAtoms(v.Y, set)
	case boolengine.Implies:
		collectAtoms(v.X, set)
		collectAtoms(v.Y, set)
	case boolengine.Equals:
		collectAtoms(v.X, set)
		collectAtoms(v.Y, set)
	}
}

func evalFormula(f boolengine.Formula, assign map[int]bool) bool {
	switch v := f.(type) {
	case boolengine.Atom:
		return assign[v.ID]
	case boolengine.Not:
		return !evalFormula(v.X, assign)
	case boolengine.And:
		return evalFormula(v.X, assign) && evalFormula(v.Y, assign)
	case boolengine.Or:
		return evalFormula(v.X, assign) || evalFormula(v.Y, assign)
	case boolengine.Iff:
		return evalFormula(v.X, assign) == evalFormula(v.Y, assign)
	case boolengine.Implies:
		return !evalFormula(v.X, assign) || evalFormula(v.Y, assign)
	case boolengine.Equals:
		return evalFormula(v.X, assign) == evalFormula(v.Y, assign)
	case boolengine.True:
		return true
	case boolengine.False:
		return false
	default:
		return false
	}
}
