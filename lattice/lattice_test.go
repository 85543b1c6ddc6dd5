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

package lattice_test

import (
	"testing"

	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLattice_StoreExprNullabilityInsertIfAbsent(t *testing.T) {
	t.Parallel()

	l := lattice.New()
	e := &cxxast.DeclRefExpr{Ty: &cxxtype.BuiltinType{Name: "int"}}

	require.True(t, l.StoreExprNullability(e, kind.Vector{kind.NonNull}))
	require.False(t, l.StoreExprNullability(e, kind.Vector{kind.Nullable}))

	v, ok := l.ExprNullability.Load(e)
	require.True(t, ok)
	require.Equal(t, kind.Vector{kind.NonNull}, v, "earlier result must stick")
}

func TestAssignNullabilityVariable_MemoizedPerDecl(t *testing.T) {
	t.Parallel()

	l := lattice.New()
	arena := boolengine.NewArena()
	decl := &cxxtype.VarDecl{Name: "p"}

	first := lattice.AssignNullabilityVariable(l, decl, arena)
	second := lattice.AssignNullabilityVariable(l, decl, arena)
	require.Equal(t, first, second)

	other := &cxxtype.VarDecl{Name: "q"}
	third := lattice.AssignNullabilityVariable(l, other, arena)
	require.NotEqual(t, first.Nonnull, third.Nonnull)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
