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

// Package driver implements spec.md §4's C9: the analysis entry point that
// drives the non-flow-sensitive and flow-sensitive transfers over one
// function's CFG to a local fixpoint, and the thin façade spec.md §6 names
// over the other eight components.
package driver

import (
	"errors"
	"fmt"

	"github.com/kiwiwarmnfuzzy/ptrnull/boolengine"
	"github.com/kiwiwarmnfuzzy/ptrnull/config"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/diagnostic"
	"github.com/kiwiwarmnfuzzy/ptrnull/flow"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/kiwiwarmnfuzzy/ptrnull/pointer"
	"github.com/kiwiwarmnfuzzy/ptrnull/rebuild"
	"github.com/kiwiwarmnfuzzy/ptrnull/resugar"
	"github.com/kiwiwarmnfuzzy/ptrnull/transfer"
)

// BlockEnvironments supplies the per-block Environment the analysis runs
// flow-sensitive rules against. Building and merging these at CFG joins is
// the surrounding dataflow framework's job (spec.md §1, §5 "the analysis
// runs to a local fixpoint computed by the external dataflow framework");
// Analyze only ever reads the Environment this returns for a given block,
// it never forks or merges one itself.
type BlockEnvironments func(blockID int) lattice.Environment

// Analyze implements spec.md §6's analyze(ast, cfg, env): runs the
// non-flow-sensitive transfer (package transfer) followed by the
// flow-sensitive transfer (package flow) over every statement of cfg, in
// the block order cfg.Blocks is already given in (spec.md §5 assumes
// reverse-postorder), repeating until the lattice stops growing or
// config.MaxCFGFixpointRounds is reached. A non-nil error means a fatal
// condition (spec.md §7) was hit while processing some statement; the
// caller is expected to report it for this function and move on to the
// next, exactly as spec.md §7 describes.
func Analyze(cfg *cxxast.CFG, lat *lattice.Lattice, envs BlockEnvironments, sink diagnostic.Sink) error {
	for round := 0; round < config.MaxCFGFixpointRounds; round++ {
		before := lat.ExprNullability.Len()

		for _, block := range cfg.Blocks {
			env := envs(block.ID)
			for _, el := range block.Elements {
				if !el.IsStatement() {
					continue
				}
				if err := walkExpr(el.Stmt, lat, env, sink); err != nil {
					return fmt.Errorf("%w: %w", ErrFatalAnalysis, err)
				}
			}
		}

		if lat.ExprNullability.Len() == before {
			return nil
		}
	}
	return nil
}

// walkExpr visits e's children before e itself (spec.md §5 "expressions are
// visited in program order so child nullability is always present when the
// parent is visited"), running transfer.Visit then the matching
// flow-sensitive rule at each node (spec.md §5 "the non-flow-sensitive
// transfer runs before the flow-sensitive transfer on each statement").
func walkExpr(e cxxast.Expr, lat *lattice.Lattice, env lattice.Environment, sink diagnostic.Sink) error {
	if e == nil {
		return nil
	}
	for _, child := range children(e) {
		if err := walkExpr(child, lat, env, sink); err != nil {
			return err
		}
	}

	if err := transfer.Visit(e, lat, sink); err != nil {
		return err
	}
	visitFlow(e, lat, env)
	return nil
}

// visitFlow dispatches e to the matching flow-sensitive rule (spec.md §4.6).
// Expression kinds with no rule of their own fall through to
// flow.VisitArbitraryPointerExpr, spec.md §4.6's named catch-all.
func visitFlow(e cxxast.Expr, lat *lattice.Lattice, env lattice.Environment) {
	switch v := e.(type) {
	case *cxxast.NullPointerLiteralExpr:
		flow.VisitNullPointerLiteral(v, env)
	case *cxxast.UnaryOperator:
		if v.Op == cxxast.UnaryAddrOf {
			flow.VisitAddressOf(v, env)
		} else {
			flow.VisitArbitraryPointerExpr(v, env, lat)
		}
	case *cxxast.CallExpr:
		flow.VisitCall(v, env, lat)
	case *cxxast.BinaryOperator:
		visitComparison(v, env)
	default:
		flow.VisitArbitraryPointerExpr(v, env, lat)
	}
}

// visitComparison implements the two-pointer equality/inequality rule of
// spec.md §4.6: both sides need an already-initialized pointer value, which
// they get from having been walked (as children) before this node.
func visitComparison(e *cxxast.BinaryOperator, env lattice.Environment) {
	if e.Op != cxxast.BinaryEQ && e.Op != cxxast.BinaryNE {
		return
	}
	lhs, ok1 := env.ValueForExpr(e.LHS)
	rhs, ok2 := env.ValueForExpr(e.RHS)
	if !ok1 || !ok2 {
		return
	}
	cmp := env.Engine().MkAtomic()
	flow.VisitComparison(e, env, lhs, rhs, cmp)
}

func children(e cxxast.Expr) []cxxast.Expr {
	switch v := e.(type) {
	case *cxxast.MemberExpr:
		return []cxxast.Expr{v.Base}
	case *cxxast.CallExpr:
		return append([]cxxast.Expr{v.Callee}, v.Args...)
	case *cxxast.MemberCallExpr:
		return append([]cxxast.Expr{v.Callee}, v.Args...)
	case *cxxast.CastExpr:
		return []cxxast.Expr{v.Sub}
	case *cxxast.MaterializeTemporaryExpr:
		return []cxxast.Expr{v.Sub}
	case *cxxast.UnaryOperator:
		return []cxxast.Expr{v.Sub}
	case *cxxast.ArraySubscriptExpr:
		return []cxxast.Expr{v.Base, v.Index}
	case *cxxast.BinaryOperator:
		return []cxxast.Expr{v.LHS, v.RHS}
	default:
		return nil
	}
}

// ErrFatalAnalysis wraps any fatal condition (spec.md §7) surfaced while
// analyzing a function, for callers distinguishing "this function failed"
// from a programming error in the driver itself.
var ErrFatalAnalysis = errors.New("driver: fatal condition aborted function analysis")

// CountPointersInType re-exports pointer.CountInType under the name spec.md
// §6 gives it (count_pointers_in_type).
func CountPointersInType(t cxxtype.Type) int {
	return pointer.CountInType(t)
}

// AssignNullabilityVariable re-exports lattice.AssignNullabilityVariable
// under the name spec.md §6 gives it (assign_nullability_variable).
func AssignNullabilityVariable(l *lattice.Lattice, decl any, arena boolengine.Engine) lattice.PointerTypeNullability {
	return lattice.AssignNullabilityVariable(l, decl, arena)
}

// GetNullabilityAnnotationsFromType re-exports resugar.GetAnnotations under
// the name spec.md §6 gives it (get_nullability_annotations_from_type).
func GetNullabilityAnnotationsFromType(t cxxtype.Type, hook resugar.SubstitutionHook) (kind.Vector, error) {
	return resugar.GetAnnotations(t, hook)
}

// RebuildWithNullability re-exports rebuild.Rebuild under the name spec.md
// §6 gives it (rebuild_with_nullability).
func RebuildWithNullability(t cxxtype.Type, v kind.Vector) (cxxtype.Type, error) {
	return rebuild.Rebuild(t, v)
}

// PrintWithNullability re-exports rebuild.Print under the name spec.md §6
// gives it (print_with_nullability).
func PrintWithNullability(t cxxtype.Type, v kind.Vector) (string, error) {
	return rebuild.Print(t, v)
}
