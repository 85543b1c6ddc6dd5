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

package boolengine_test

import (
	"testing"

	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestArena_MkAtomicFreshIDs(t *testing.T) {
	t.Parallel()

	a := boolengine.NewArena()
	x := a.MkAtomic().(boolengine.Atom)
	y := a.MkAtomic().(boolengine.Atom)
	require.NotEqual(t, x.ID, y.ID)
}

func TestArena_Composites(t *testing.T) {
	t.Parallel()

	a := boolengine.NewArena()
	x := a.MkAtomic()
	y := a.MkAtomic()

	require.Equal(t, boolengine.Not{X: x}, a.MkNot(x))
	require.Equal(t, boolengine.And{X: x, Y: y}, a.MkAnd(x, y))
	require.Equal(t, boolengine.Or{X: x, Y: y}, a.MkOr(x, y))
	require.Equal(t, boolengine.Iff{X: x, Y: y}, a.MkIff(x, y))
	require.Equal(t, boolengine.Implies{X: x, Y: y}, a.MkImplies(x, y))
	require.Equal(t, boolengine.Equals{X: x, Y: y}, a.MkEquals(x, y))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
