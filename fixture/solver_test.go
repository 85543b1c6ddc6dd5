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

import (
	"testing"

	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestImplies_ConjunctionEntailsEachConjunct(t *testing.T) {
	t.Parallel()

	a := boolengine.Atom{ID: 1}
	b := boolengine.Atom{ID: 2}
	facts := []boolengine.Formula{boolengine.And{X: a, Y: b}}

	require.True(t, implies(facts, a))
	require.True(t, implies(facts, b))
	require.False(t, implies(facts, boolengine.Not{X: a}))
}

func TestImplies_NoFactsOnlyEntailsTautologies(t *testing.T) {
	t.Parallel()

	a := boolengine.Atom{ID: 1}
	require.False(t, implies(nil, a))
	require.True(t, implies(nil, boolengine.True{}))
}

func TestImplies_ContradictoryFactsEntailEverything(t *testing.T) {
	t.Parallel()

	a := boolengine.Atom{ID: 1}
	facts := []boolengine.Formula{a, boolengine.Not{X: a}}
	require.True(t, implies(facts, boolengine.Atom{ID: 99}))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
