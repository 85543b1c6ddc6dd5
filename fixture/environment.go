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

// Package fixture provides minimal concrete builders and a reference
// Environment implementation for exercising the core in tests — the
// analogue of the teacher's testdata fixture trees, but as Go constructors
// since no C++ parser is in scope (spec.md §1).
package fixture

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
)

// Environment is a reference lattice.Environment: an in-memory map-backed
// implementation good enough for unit tests, never used by the core
// itself. flow_condition_implies is answered by a brute-force satisfiability
// check (solver.go), standing in for the external SAT/SMT solver (spec.md
// §1).
type Environment struct {
	arena     *boolengine.Arena
	values    map[cxxast.Expr]*lattice.PointerValue
	locations map[cxxast.Expr]*lattice.StorageLocation
	facts     []boolengine.Formula
	path      boolengine.Formula
}

// NewEnvironment returns an empty Environment backed by a fresh arena.
func NewEnvironment() *Environment {
	arena := boolengine.NewArena()
	return &Environment{
		arena:     arena,
		values:    make(map[cxxast.Expr]*lattice.PointerValue),
		locations: make(map[cxxast.Expr]*lattice.StorageLocation),
		path:      arena.MkAtomic(),
	}
}

// Fork returns a copy of e sharing the same arena (so atoms allocated in
// one branch remain meaningful in the other) but with an independent fact
// set and a fresh path token, for exercising CFG branches in tests.
func (e *Environment) Fork() *Environment {
	values := make(map[cxxast.Expr]*lattice.PointerValue, len(e.values))
	for k, v := range e.values {
		values[k] = v
	}
	locations := make(map[cxxast.Expr]*lattice.StorageLocation, len(e.locations))
	for k, v := range e.locations {
		locations[k] = v
	}
	facts := make([]boolengine.Formula, len(e.facts))
	copy(facts, e.facts)
	return &Environment{
		arena:     e.arena,
		values:    values,
		locations: locations,
		facts:     facts,
		path:      e.arena.MkAtomic(),
	}
}

// BindValue associates pv with expr, as the surrounding dataflow framework
// would after creating a value for an expression's slot.
func (e *Environment) BindValue(expr cxxast.Expr, pv *lattice.PointerValue) {
	e.values[expr] = pv
}

func (e *Environment) ValueForExpr(expr cxxast.Expr) (*lattice.PointerValue, bool) {
	pv, ok := e.values[expr]
	return pv, ok
}

func (e *Environment) CreateValue(cxxtype.Type) *lattice.PointerValue {
	return &lattice.PointerValue{}
}

func (e *Environment) SetValueForExpr(expr cxxast.Expr, pv *lattice.PointerValue) {
	e.values[expr] = pv
}

func (e *Environment) CreateStorageLocation(t cxxtype.Type) *lattice.StorageLocation {
	return &lattice.StorageLocation{Type: t}
}

func (e *Environment) SetStorageLocationForExpr(expr cxxast.Expr, loc *lattice.StorageLocation) {
	e.locations[expr] = loc
}

func (e *Environment) StorageLocationForExpr(expr cxxast.Expr) (*lattice.StorageLocation, bool) {
	loc, ok := e.locations[expr]
	return loc, ok
}

func (e *Environment) FlowConditionToken() lattice.FlowConditionToken {
	return e.path
}

func (e *Environment) FlowConditionImplies(b boolengine.Formula) bool {
	return implies(e.facts, b)
}

func (e *Environment) AddToFlowCondition(b boolengine.Formula) {
	e.facts = append(e.facts, b)
}

func (e *Environment) Engine() boolengine.Engine {
	return e.arena
}
