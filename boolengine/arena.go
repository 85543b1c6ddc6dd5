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

package boolengine

// Arena is a minimal reference Engine: it allocates fresh Atom handles and
// builds formula nodes without any simplification or solving. Resolving
// whether one formula implies another is the SAT/SMT solver's job (spec.md
// §1); Arena itself never decides satisfiability.
type Arena struct {
	next int
}

// NewArena returns an empty Arena.
func NewArena() *Arena { return &Arena{} }

func (a *Arena) MkAtomic() Formula {
	a.next++
	return Atom{ID: a.next}
}

func (a *Arena) MkAnd(x, y Formula) Formula     { return And{X: x, Y: y} }
func (a *Arena) MkOr(x, y Formula) Formula      { return Or{X: x, Y: y} }
func (a *Arena) MkNot(x Formula) Formula        { return Not{X: x} }
func (a *Arena) MkIff(x, y Formula) Formula     { return Iff{X: x, Y: y} }
func (a *Arena) MkImplies(x, y Formula) Formula { return Implies{X: x, Y: y} }
func (a *Arena) MkEquals(x, y Formula) Formula  { return Equals{X: x, Y: y} }
