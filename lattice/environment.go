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

package lattice

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
)

// FlowConditionToken is itself a boolean formula representing the
// environment's accumulated path condition (spec.md §4.8's f1, f2, used
// directly inside the merge disjunction "(f1 ∧ (m ⇔ b1)) ∨ (f2 ∧ (m ⇔ b2))").
type FlowConditionToken = boolengine.Formula

// Environment is the dataflow framework's per-program-point state (spec.md
// §6). The core never constructs one; it is handed one by the driver and
// only calls these methods on it.
type Environment interface {
	// ValueForExpr returns the PointerValue already bound to e, if any.
	ValueForExpr(e cxxast.Expr) (*PointerValue, bool)
	// CreateValue allocates a fresh, uninitialized PointerValue for a value
	// of type t and binds it to no expression yet.
	CreateValue(t cxxtype.Type) *PointerValue
	// SetValueForExpr binds e to pv, as a rule does after creating a value
	// for an expression's slot so later visits of the same expression find
	// it again via ValueForExpr.
	SetValueForExpr(e cxxast.Expr, pv *PointerValue)
	// CreateStorageLocation allocates a fresh StorageLocation for type t
	// (spec.md §4.6, glvalue call results).
	CreateStorageLocation(t cxxtype.Type) *StorageLocation
	// SetStorageLocationForExpr binds e's glvalue to loc.
	SetStorageLocationForExpr(e cxxast.Expr, loc *StorageLocation)
	// StorageLocationForExpr returns the StorageLocation previously bound to
	// e, if any.
	StorageLocationForExpr(e cxxast.Expr) (*StorageLocation, bool)
	// FlowConditionToken returns a handle identifying the environment's
	// current flow condition, used by merge (spec.md §4.8).
	FlowConditionToken() FlowConditionToken
	// FlowConditionImplies reports whether the environment's current flow
	// condition implies b. The underlying SAT/SMT solver is an external
	// collaborator (spec.md §1); the core treats its answer as
	// authoritative and never retries (spec.md §5).
	FlowConditionImplies(b boolengine.Formula) bool
	// AddToFlowCondition conjoins b onto the environment's flow condition.
	AddToFlowCondition(b boolengine.Formula)
	// Engine returns the BoolEngine arena backing this environment and every
	// environment it was merged or forked from.
	Engine() boolengine.Engine
}
