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

package flow_test

import (
	"testing"

	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/fixture"
	"github.com/kiwiwarmnfuzzy/ptrnull/flow"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInitNotNullPointer(t *testing.T) {
	t.Parallel()

	pv := &lattice.PointerValue{}
	flow.InitNotNullPointer(pv)
	require.True(t, pv.Initialized)
	require.Equal(t, boolengine.True{}, pv.IsKnown)
	require.Equal(t, boolengine.False{}, pv.IsNull)
}

func TestInitNullPointer(t *testing.T) {
	t.Parallel()

	pv := &lattice.PointerValue{}
	flow.InitNullPointer(pv)
	require.Equal(t, boolengine.True{}, pv.IsKnown)
	require.Equal(t, boolengine.True{}, pv.IsNull)
}

func TestInitNullablePointer_IsKnownTrueIsNullFreshAtom(t *testing.T) {
	t.Parallel()

	arena := boolengine.NewArena()
	pv := &lattice.PointerValue{}
	flow.InitNullablePointer(pv, arena)
	require.Equal(t, boolengine.True{}, pv.IsKnown)
	require.IsType(t, boolengine.Atom{}, pv.IsNull)
}

func TestInitUnknownPointer(t *testing.T) {
	t.Parallel()

	pv := &lattice.PointerValue{}
	flow.InitUnknownPointer(pv)
	require.Equal(t, boolengine.False{}, pv.IsKnown)
}

func TestGetPointerNullability_PrefersStaticSugarOverFallback(t *testing.T) {
	t.Parallel()

	e := &cxxast.DeclRefExpr{Ty: fixture.NonnullPtr(fixture.Int())}
	lat := lattice.New()
	lat.StoreExprNullability(e, kind.Vector{kind.Nullable}) // would disagree if consulted

	require.Equal(t, kind.NonNull, flow.GetPointerNullability(e, lat))
}

func TestGetPointerNullability_FallsBackToLatticeWhenStaticUnspecified(t *testing.T) {
	t.Parallel()

	e := &cxxast.DeclRefExpr{Ty: fixture.Ptr(fixture.Int())}
	lat := lattice.New()
	lat.StoreExprNullability(e, kind.Vector{kind.Nullable})

	require.Equal(t, kind.Nullable, flow.GetPointerNullability(e, lat))
}

func TestVisitNullPointerLiteral_CreatesValueIfAbsent(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	e := &cxxast.NullPointerLiteralExpr{Ty: &cxxtype.BuiltinType{Name: "nullptr_t"}}

	flow.VisitNullPointerLiteral(e, env)

	pv, ok := env.ValueForExpr(e)
	require.True(t, ok)
	require.True(t, pv.Initialized)
	require.Equal(t, boolengine.True{}, pv.IsNull)
}

func TestVisitNullPointerLiteral_ReusesExistingValue(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	e := &cxxast.NullPointerLiteralExpr{Ty: &cxxtype.BuiltinType{Name: "nullptr_t"}}

	pv := &lattice.PointerValue{}
	env.BindValue(e, pv)
	flow.VisitNullPointerLiteral(e, env)
	require.True(t, pv.Initialized)
	require.Equal(t, boolengine.True{}, pv.IsNull)
}

func TestVisitAddressOf(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	e := &cxxast.UnaryOperator{Op: cxxast.UnaryAddrOf, Ty: fixture.Ptr(fixture.Int())}
	pv := &lattice.PointerValue{}
	env.BindValue(e, pv)

	flow.VisitAddressOf(e, env)
	require.Equal(t, boolengine.False{}, pv.IsNull)
}

func TestVisitCall_CreatesValueAndAllocatesStorageForGlvalue(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	lat := lattice.New()
	e := &cxxast.CallExpr{Ty: fixture.NonnullPtr(fixture.Int()), IsGlvalue: true}

	flow.VisitCall(e, env, lat)

	pv, ok := env.ValueForExpr(e)
	require.True(t, ok)
	require.True(t, pv.Initialized)
	require.Equal(t, boolengine.False{}, pv.IsNull)

	loc, ok := env.StorageLocationForExpr(e)
	require.True(t, ok)
	require.NotNil(t, loc)
}

func TestVisitArbitraryPointerExpr_DeclarationOverride(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	lat := lattice.New()
	arena := env.Engine()

	decl := &cxxtype.VarDecl{Name: "p", Type: fixture.Ptr(fixture.Int())}
	override := lattice.AssignNullabilityVariable(lat, decl, arena)

	e := &cxxast.DeclRefExpr{Decl: decl, Ty: fixture.Ptr(fixture.Int())}
	flow.VisitArbitraryPointerExpr(e, env, lat)

	pv, ok := env.ValueForExpr(e)
	require.True(t, ok)
	require.True(t, pv.Initialized)

	// nonnull ⇒ ¬is_null must now be entailed by the flow condition.
	env.AddToFlowCondition(override.Nonnull)
	require.True(t, env.FlowConditionImplies(arena.MkNot(pv.IsNull)))
}

func TestVisitArbitraryPointerExpr_FallsBackToStaticNullabilityWithoutOverride(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	lat := lattice.New()
	e := &cxxast.DeclRefExpr{Decl: &cxxtype.VarDecl{Name: "q"}, Ty: fixture.NonnullPtr(fixture.Int())}

	flow.VisitArbitraryPointerExpr(e, env, lat)

	pv, ok := env.ValueForExpr(e)
	require.True(t, ok)
	require.Equal(t, boolengine.False{}, pv.IsNull)
}

func TestVisitComparison_BothNullImpliesEquality(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	arena := env.Engine()

	lhs := &lattice.PointerValue{Initialized: true, IsKnown: boolengine.True{}, IsNull: arena.MkAtomic()}
	rhs := &lattice.PointerValue{Initialized: true, IsKnown: boolengine.True{}, IsNull: arena.MkAtomic()}

	env.AddToFlowCondition(lhs.IsNull)
	env.AddToFlowCondition(rhs.IsNull)

	cmp := arena.MkAtomic()
	e := &cxxast.BinaryOperator{Op: cxxast.BinaryEQ}
	flow.VisitComparison(e, env, lhs, rhs, cmp)

	require.True(t, env.FlowConditionImplies(cmp))
}

func TestVisitComparison_OneNullOneNonNullImpliesInequality(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	arena := env.Engine()

	lhs := &lattice.PointerValue{Initialized: true, IsKnown: boolengine.True{}, IsNull: boolengine.True{}}
	rhs := &lattice.PointerValue{Initialized: true, IsKnown: boolengine.True{}, IsNull: boolengine.False{}}

	cmp := arena.MkAtomic()
	e := &cxxast.BinaryOperator{Op: cxxast.BinaryNE}
	flow.VisitComparison(e, env, lhs, rhs, cmp)

	require.True(t, env.FlowConditionImplies(cmp))
}

func TestPointerToBoolValue_NegatesIsNull(t *testing.T) {
	t.Parallel()

	env := fixture.NewEnvironment()
	pv := &lattice.PointerValue{Initialized: true, IsKnown: boolengine.True{}, IsNull: boolengine.False{}}

	v := flow.PointerToBoolValue(pv, env.Engine())
	require.Equal(t, boolengine.Not{X: boolengine.False{}}, v)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
