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

package transfer

import (
	"errors"
	"fmt"

	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/pointer"
)

// ErrDependentCast is the fatal contract violation of spec.md §7: a
// CastDependent reached the transfer outside a dependent template context.
var ErrDependentCast = errors.New("transfer: dependent cast in non-dependent context")

// ErrUnclassifiedCastKind is fatal: the cast policy table in spec.md §4.5 is
// closed by design (spec.md §9 "Casts as a policy table"); any CastKind not
// classified here is a programming error in the AST builder, not a
// recoverable condition.
var ErrUnclassifiedCastKind = errors.New("transfer: unclassified CastKind")

var identityPreserving = map[cxxast.CastKind]bool{
	cxxast.CastLValueToRValue:         true,
	cxxast.CastNoOp:                   true,
	cxxast.CastAtomicToNonAtomic:      true,
	cxxast.CastNonAtomicToAtomic:      true,
	cxxast.CastAddressSpaceConversion: true,
}

var bitCastFamily = map[cxxast.CastKind]bool{
	cxxast.CastLValueBitCast:        true,
	cxxast.CastBitCast:              true,
	cxxast.CastLValueToRValueBitCast: true,
	cxxast.CastDerivedToBase:        true,
	cxxast.CastBaseToDerived:        true,
}

var opaqueUnspecified = map[cxxast.CastKind]bool{
	cxxast.CastUserDefinedConversion:         true,
	cxxast.CastConstructorConversion:         true,
	cxxast.CastIntegralToPointer:             true,
	cxxast.CastMemberPointerToBoolean:        true,
	cxxast.CastToUnion:                       true,
	cxxast.CastVectorSplat:                   true,
	cxxast.CastObjCObjectLValueCast:          true,
	cxxast.CastBlockPointerToObjCPointerCast: true,
	cxxast.CastARCConsumeObject:              true,
}

var scalarNumeric = map[cxxast.CastKind]bool{
	cxxast.CastIntegralCast:          true,
	cxxast.CastFloatingCast:          true,
	cxxast.CastBooleanToSignedIntegral: true,
	cxxast.CastIntegralToFloating:    true,
	cxxast.CastFloatingToIntegral:    true,
	cxxast.CastFloatingToBoolean:     true,
	cxxast.CastIntegralToBoolean:     true,
	cxxast.CastPointerToBoolean:      true,
	cxxast.CastFloatingComplexCast:   true,
}

// CastPolicy implements spec.md §4.5's Cast rule. childVec is the source
// subexpression's already-computed nullability vector.
func CastPolicy(e *cxxast.CastExpr, childVec kind.Vector) (kind.Vector, error) {
	n := pointer.CountInType(e.Ty)

	switch {
	case identityPreserving[e.Kind]:
		return childVec, nil
	case bitCastFamily[e.Kind]:
		return bitCastVector(e, childVec, n), nil
	case opaqueUnspecified[e.Kind]:
		return kind.UnspecifiedVector(n), nil
	case scalarNumeric[e.Kind]:
		return kind.Vector{}, nil
	}

	switch e.Kind {
	case cxxast.CastDynamic:
		vec := kind.UnspecifiedVector(n)
		if n > 0 {
			vec[0] = kind.Nullable
		}
		return vec, nil
	case cxxast.CastNullToPointer:
		vec := kind.UnspecifiedVector(n)
		if n > 0 && !e.DestIsNullPointerLiteralType {
			vec[0] = kind.Nullable
		}
		return vec, nil
	case cxxast.CastArrayToPointerDecay, cxxast.CastFunctionToPointerDecay:
		return append(kind.Vector{kind.NonNull}, childVec...), nil
	case cxxast.CastBuiltinFnToFnPtr:
		return childVec, nil
	case cxxast.CastDependent:
		return nil, fmt.Errorf("%w", ErrDependentCast)
	}

	return nil, fmt.Errorf("%w: %d", ErrUnclassifiedCastKind, e.Kind)
}

// bitCastVector implements the bit-cast family rule: start from an
// all-Unspecified vector sized for the destination type, then copy the
// source annotation at each successive pointee depth for as long as both
// source and destination remain pointer types there (spec.md §4.5 Cast,
// "Bit-cast family").
func bitCastVector(e *cxxast.CastExpr, childVec kind.Vector, n int) kind.Vector {
	out := kind.UnspecifiedVector(n)
	if e.Sub == nil {
		return out
	}

	srcT, dstT := e.Sub.Type(), e.Ty
	for depth := 0; depth < n; depth++ {
		sp, ok1 := srcT.(*cxxtype.PointerType)
		dp, ok2 := dstT.(*cxxtype.PointerType)
		if !ok1 || !ok2 {
			break
		}
		if depth < len(childVec) {
			out[depth] = childVec[depth]
		}
		srcT, dstT = sp.Pointee, dp.Pointee
	}
	return out
}
