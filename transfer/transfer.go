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

// Package transfer implements spec.md §4.5: the non-flow-sensitive
// transfer, a bottom-up per-AST-node computation that populates the
// lattice's ExprNullability map. Every rule here assumes the CFG has
// already visited child expressions before their parent (spec.md §5
// "Ordering guarantees"), so a child's vector is available in the lattice
// by the time a parent rule runs.
package transfer

import (
	"fmt"

	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/diagnostic"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/kiwiwarmnfuzzy/ptrnull/pointer"
	"github.com/kiwiwarmnfuzzy/ptrnull/resugar"
)

// Visit runs the transfer rule for e, if e is one of the expression kinds
// spec.md §4.5 names, and inserts the result into lat with insert-if-absent
// semantics (spec.md §4.5, §8 "Idempotence"). Expression kinds spec.md §4.5
// doesn't mention (BinaryOperator, NullPointerLiteralExpr — those are §4.6's
// concern) are left unmapped here. A non-nil error means a fatal condition
// (spec.md §7) was hit and the caller must abort this function's analysis.
func Visit(e cxxast.Expr, lat *lattice.Lattice, sink diagnostic.Sink) error {
	if _, ok := lat.ExprNullability.Load(e); ok {
		return nil
	}

	vec, err := compute(e, lat, sink)
	if err != nil {
		return err
	}
	if vec == nil && !handledKind(e) {
		return nil
	}

	wantLen := pointer.CountInExpr(e)
	if len(vec) != wantLen {
		diagnostic.Emit(sink, diagnostic.Diagnostic{
			Code: diagnostic.CodeVectorLengthMismatch,
			Message: fmt.Sprintf(
				"transfer rule produced a vector of length %d, want %d for expression of type %s",
				len(vec), wantLen, e.Type().String()),
		})
		vec = kind.UnspecifiedVector(wantLen)
	}

	lat.StoreExprNullability(e, vec)
	return nil
}

func handledKind(e cxxast.Expr) bool {
	switch e.(type) {
	case *cxxast.DeclRefExpr, *cxxast.MemberExpr, *cxxast.MemberCallExpr, *cxxast.CastExpr,
		*cxxast.MaterializeTemporaryExpr, *cxxast.CallExpr, *cxxast.UnaryOperator,
		*cxxast.NewExpr, *cxxast.ArraySubscriptExpr, *cxxast.ThisExpr:
		return true
	default:
		return false
	}
}

func compute(e cxxast.Expr, lat *lattice.Lattice, sink diagnostic.Sink) (kind.Vector, error) {
	switch v := e.(type) {
	case *cxxast.DeclRefExpr:
		return resugar.GetAnnotations(v.Ty, nil)

	case *cxxast.MemberExpr:
		ty := v.Ty
		if v.IsBoundMember {
			ty = v.Member.Type
		}
		return resugar.GetAnnotations(ty, memberSubstitutionHook(v.Base, lat))

	case *cxxast.MemberCallExpr:
		calleeVec := childVector(lat, v.Callee, sink)
		n := pointer.CountInType(v.Ty)
		if n > len(calleeVec) {
			return kind.UnspecifiedVector(n), nil
		}
		return calleeVec[:n], nil

	case *cxxast.CastExpr:
		childVec := childVector(lat, v.Sub, sink)
		return CastPolicy(v, childVec)

	case *cxxast.MaterializeTemporaryExpr:
		return childVector(lat, v.Sub, sink), nil

	case *cxxast.CallExpr:
		return resugar.GetAnnotations(v.Ty, callSubstitutionHook(v))

	case *cxxast.UnaryOperator:
		return unaryVector(v, lat, sink), nil

	case *cxxast.NewExpr:
		vec, err := resugar.GetAnnotations(v.Ty, nil)
		if err != nil {
			return nil, err
		}
		if len(vec) > 0 {
			if v.Decl != nil && v.Decl.IsNullCheckingNew {
				vec[0] = kind.Nullable
			} else {
				vec[0] = kind.NonNull
			}
		}
		return vec, nil

	case *cxxast.ArraySubscriptExpr:
		baseVec := childVector(lat, v.Base, sink)
		if len(baseVec) == 0 {
			return baseVec, nil
		}
		return baseVec[1:], nil

	case *cxxast.ThisExpr:
		vec, err := resugar.GetAnnotations(v.Ty, nil)
		if err != nil {
			return nil, err
		}
		if len(vec) > 0 {
			vec[0] = kind.NonNull
		}
		return vec, nil

	default:
		return nil, nil
	}
}

func unaryVector(v *cxxast.UnaryOperator, lat *lattice.Lattice, sink diagnostic.Sink) kind.Vector {
	switch v.Op {
	case cxxast.UnaryAddrOf:
		return append(kind.Vector{kind.NonNull}, childVector(lat, v.Sub, sink)...)
	case cxxast.UnaryDeref:
		operand := childVector(lat, v.Sub, sink)
		if len(operand) == 0 {
			return operand
		}
		return operand[1:]
	case cxxast.UnaryCoAwait:
		return kind.UnspecifiedVector(pointer.CountInType(v.Ty))
	default: // UnaryArithmeticOrLogical
		return childVector(lat, v.Sub, sink)
	}
}

// childVector returns child's already-computed nullability vector, or an
// all-Unspecified fallback of the correct length with a MissingChildNullability
// diagnostic if the CFG did not visit child first (spec.md §7).
func childVector(lat *lattice.Lattice, child cxxast.Expr, sink diagnostic.Sink) kind.Vector {
	if child == nil {
		return nil
	}
	if v, ok := lat.ExprNullability.Load(child); ok {
		return v
	}
	diagnostic.Emit(sink, diagnostic.Diagnostic{
		Code:    diagnostic.CodeMissingChildNullability,
		Message: fmt.Sprintf("no nullability recorded yet for child expression of type %s", child.Type().String()),
	})
	return kind.UnspecifiedVector(pointer.CountInExpr(child))
}
