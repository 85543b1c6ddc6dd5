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

package driver_test

import (
	"testing"

	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/driver"
	"github.com/kiwiwarmnfuzzy/ptrnull/fixture"
	"github.com/kiwiwarmnfuzzy/ptrnull/flow"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// oneBlock builds a single-block CFG holding stmts in program order, the
// shape every scenario here needs: no branching within the block itself.
func oneBlock(stmts ...cxxast.Expr) *cxxast.CFG {
	var elems []cxxast.CFGElement
	for _, s := range stmts {
		elems = append(elems, cxxast.CFGElement{Stmt: s})
	}
	block := &cxxast.CFGBlock{ID: 0, Elements: elems}
	return &cxxast.CFG{Blocks: []*cxxast.CFGBlock{block}, Entry: block}
}

func singleEnv(env lattice.Environment) driver.BlockEnvironments {
	return func(int) lattice.Environment { return env }
}

// safe reports whether env's flow condition proves pv is never null at this
// program point — the dereference-safety check spec.md §8's scenarios are
// phrased in terms of, built from the core's own primitives.
func safe(env lattice.Environment, pv *lattice.PointerValue) bool {
	return env.FlowConditionImplies(env.Engine().MkNot(pv.IsNull))
}

func unsafe(env lattice.Environment, pv *lattice.PointerValue) bool {
	return env.FlowConditionImplies(pv.IsNull)
}

// Scenario 1 (spec.md §8): `int *x = nullptr; *x;` — the dereference is
// unsafe. Our minimal AST has no separate declaration/assignment node, so
// the null literal is dereferenced directly, standing in for "x" after its
// null initializer with no intervening reassignment.
func TestAnalyze_DereferenceOfNullLiteralIsUnsafe(t *testing.T) {
	t.Parallel()

	nullLit := &cxxast.NullPointerLiteralExpr{Ty: fixture.Ptr(fixture.Int())}
	deref := &cxxast.UnaryOperator{Op: cxxast.UnaryDeref, Sub: nullLit, Ty: fixture.Int()}

	env := fixture.NewEnvironment()
	lat := lattice.New()

	require.NoError(t, driver.Analyze(oneBlock(nullLit, deref), lat, singleEnv(env), nil))

	pv, ok := env.ValueForExpr(nullLit)
	require.True(t, ok)
	require.True(t, unsafe(env, pv))
	require.False(t, safe(env, pv))
}

// Scenario 2 (spec.md §8): `void f(int *_Nonnull p){ *p; }` — safe.
func TestAnalyze_DereferenceOfNonnullParamIsSafe(t *testing.T) {
	t.Parallel()

	decl := &cxxtype.VarDecl{Name: "p", Type: fixture.NonnullPtr(fixture.Int())}
	p := &cxxast.DeclRefExpr{Decl: decl, Ty: fixture.NonnullPtr(fixture.Int())}
	deref := &cxxast.UnaryOperator{Op: cxxast.UnaryDeref, Sub: p, Ty: fixture.Int()}

	env := fixture.NewEnvironment()
	lat := lattice.New()

	require.NoError(t, driver.Analyze(oneBlock(deref), lat, singleEnv(env), nil))

	pv, ok := env.ValueForExpr(p)
	require.True(t, ok)
	require.True(t, safe(env, pv))
}

// Scenario 3 (spec.md §8): `void f(int *_Nullable p){ if (p) *p; else *p; }`
// — the then-branch dereference is safe, the else-branch unsafe. Branch
// environments are forked and narrowed the way the surrounding dataflow
// framework would at an `if`, since cxxast.CFG carries no branch-condition
// edge labels of its own (spec.md §1: CFG construction is external).
func TestAnalyze_IfNullCheckNarrowsEachBranch(t *testing.T) {
	t.Parallel()

	decl := &cxxtype.VarDecl{Name: "p", Type: fixture.NullablePtr(fixture.Int())}
	p := &cxxast.DeclRefExpr{Decl: decl, Ty: fixture.NullablePtr(fixture.Int())}
	deref := &cxxast.UnaryOperator{Op: cxxast.UnaryDeref, Sub: p, Ty: fixture.Int()}

	root := fixture.NewEnvironment()
	pv := root.CreateValue(p.Ty)
	flow.InitNullablePointer(pv, root.Engine())
	root.SetValueForExpr(p, pv)

	thenEnv := root.Fork()
	thenEnv.AddToFlowCondition(flow.PointerToBoolValue(pv, thenEnv.Engine()))

	elseEnv := root.Fork()
	elseEnv.AddToFlowCondition(elseEnv.Engine().MkNot(flow.PointerToBoolValue(pv, elseEnv.Engine())))

	lat := lattice.New()
	require.NoError(t, driver.Analyze(oneBlock(deref), lat, singleEnv(thenEnv), nil))
	require.True(t, safe(thenEnv, pv))

	lat2 := lattice.New()
	require.NoError(t, driver.Analyze(oneBlock(deref), lat2, singleEnv(elseEnv), nil))
	require.True(t, unsafe(elseEnv, pv))
}

// Scenario 4 (spec.md §8): `void f(int **_Nullable p){ *p; **p; }` — both
// dereferences unsafe. Both `*p` and `**p` dereference the same unguarded
// nullable p (the second does so as a sub-step of evaluating `**p`), so
// both are unsafe for the same reason: p's own IsNull is unconstrained.
func TestAnalyze_DoubleDereferenceOfNullableIsUnsafeAtBothLevels(t *testing.T) {
	t.Parallel()

	innerPtr := fixture.Ptr(fixture.Int())
	outerTy := fixture.NullablePtr(innerPtr)
	decl := &cxxtype.VarDecl{Name: "p", Type: outerTy}
	p := &cxxast.DeclRefExpr{Decl: decl, Ty: outerTy}
	derefOnce := &cxxast.UnaryOperator{Op: cxxast.UnaryDeref, Sub: p, Ty: innerPtr}
	derefTwice := &cxxast.UnaryOperator{Op: cxxast.UnaryDeref, Sub: derefOnce, Ty: fixture.Int()}

	env := fixture.NewEnvironment()
	lat := lattice.New()

	require.NoError(t, driver.Analyze(oneBlock(derefTwice), lat, singleEnv(env), nil))

	pv, ok := env.ValueForExpr(p)
	require.True(t, ok)
	require.True(t, unsafe(env, pv))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
