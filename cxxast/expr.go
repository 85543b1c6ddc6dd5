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

// Package cxxast models the slice of a C++-like AST and CFG that the
// nullability core consumes: a castable expression base, declaration
// references, and the CFGElement/CFGBlock iteration surface the dataflow
// framework walks. Building these from real source is an external
// collaborator (spec.md §1); this package only defines the shapes the core
// reads.
package cxxast

import "github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"

// Expr is the castable expression base every AST node the transfer rules
// care about implements. Every Expr has an identity distinct from any other
// Expr with the same shape, which is what the lattice's insert-if-absent
// ExprNullability map keys on (spec.md §4.5, design note "insert-if-absent
// maps").
type Expr interface {
	// Type is the expression's static type (its declared/canonical type,
	// not a bound-member's declaration type — callers needing the latter
	// must special-case BoundMember themselves, per spec.md §4.2).
	Type() cxxtype.Type
	exprNode()
}

type exprBase struct{}

func (exprBase) exprNode() {}

// DeclRefExpr references a variable, parameter, or function declaration.
type DeclRefExpr struct {
	exprBase
	Decl any // *cxxtype.VarDecl or *cxxtype.FuncDecl
	Ty   cxxtype.Type
}

func (e *DeclRefExpr) Type() cxxtype.Type { return e.Ty }

// MemberExpr is `base.member` or `base->member`. IsBoundMember marks the
// "bound member" placeholder form (an unresolved overload set / pointer to
// member use) for which pointer counting and the static transfer use the
// member declaration's type rather than the expression's own type (spec.md
// §4.2, §4.5).
type MemberExpr struct {
	exprBase
	Base          Expr
	Member        *cxxtype.FieldDecl
	IsBoundMember bool
	Ty            cxxtype.Type
}

func (e *MemberExpr) Type() cxxtype.Type { return e.Ty }

// CallExpr is a free-function (or function-pointer) call. ExplicitTemplateArgs
// is the template-argument list written at the call site, if any (spec.md
// §4.5 "Call": the substitution hook only resugars parameters within this
// written list; argument-deduced parameters are an explicit TODO).
type CallExpr struct {
	exprBase
	Callee               Expr
	Args                 []Expr
	ExplicitTemplateArgs []cxxtype.TemplateArgument
	// IsGlvalue marks a call returning by reference, for which the
	// flow-sensitive transfer allocates a fresh storage location at each
	// visit (spec.md §4.6 "Call expression").
	IsGlvalue bool
	Ty        cxxtype.Type
}

func (e *CallExpr) Type() cxxtype.Type { return e.Ty }

// MemberCallExpr is `base.method(...)`: a call through a MemberExpr naming a
// method, handled by its own transfer rule (spec.md §4.5 "Member call").
type MemberCallExpr struct {
	exprBase
	Callee *MemberExpr
	Args   []Expr
	Ty     cxxtype.Type
}

func (e *MemberCallExpr) Type() cxxtype.Type { return e.Ty }

// CastKind enumerates the classified cast variants (spec.md §4.5 Cast). This
// is a closed policy table: transfer.CastPolicy returns the fatal
// transfer.ErrUnclassifiedCastKind for any CastKind not present in its
// table, by design (spec.md §9
// "Casts as a policy table").
type CastKind int

const (
	// identity-preserving family
	CastLValueToRValue CastKind = iota
	CastNoOp
	CastAtomicToNonAtomic
	CastNonAtomicToAtomic
	CastAddressSpaceConversion

	// bit-cast family
	CastLValueBitCast
	CastBitCast
	CastLValueToRValueBitCast
	CastDerivedToBase
	CastBaseToDerived

	// opaque-unspecified family
	CastUserDefinedConversion
	CastConstructorConversion
	CastIntegralToPointer
	CastMemberPointerToBoolean
	CastToUnion
	CastVectorSplat
	CastObjCObjectLValueCast
	CastBlockPointerToObjCPointerCast
	CastARCConsumeObject

	// special-cased pointer-affecting casts
	CastDynamic
	CastNullToPointer
	CastArrayToPointerDecay
	CastFunctionToPointerDecay
	CastBuiltinFnToFnPtr

	// scalar-numeric family (empty result vector)
	CastIntegralCast
	CastFloatingCast
	CastBooleanToSignedIntegral
	CastIntegralToFloating
	CastFloatingToIntegral
	CastFloatingToBoolean
	CastIntegralToBoolean
	CastPointerToBoolean
	CastFloatingComplexCast

	// fatal
	CastDependent
)

// CastExpr is any cast or implicit conversion, classified by Kind.
// DestIsNullPointerLiteralType is set for a CastNullToPointer whose
// destination type is the null-pointer-literal type itself, which has no
// pointer position to annotate (spec.md §4.5 Cast, null-to-pointer rule).
type CastExpr struct {
	exprBase
	Kind                         CastKind
	Sub                          Expr
	Ty                           cxxtype.Type
	DestIsNullPointerLiteralType bool
}

func (e *CastExpr) Type() cxxtype.Type { return e.Ty }

// MaterializeTemporaryExpr wraps a prvalue being materialized into a
// temporary object; it passes its subexpression's nullability through
// unchanged (spec.md §4.5).
type MaterializeTemporaryExpr struct {
	exprBase
	Sub Expr
	Ty  cxxtype.Type
}

func (e *MaterializeTemporaryExpr) Type() cxxtype.Type { return e.Ty }

// UnaryOp enumerates the unary operators the transfer distinguishes.
type UnaryOp int

const (
	UnaryAddrOf UnaryOp = iota // &x
	UnaryDeref                 // *x
	UnaryArithmeticOrLogical   // -x, !x, ~x, ++x, --x, __real x, __imag x, __extension__ x
	UnaryCoAwait               // co_await x
)

// UnaryOperator is a prefix/postfix unary operator application.
type UnaryOperator struct {
	exprBase
	Op   UnaryOp
	Sub  Expr
	Ty   cxxtype.Type
}

func (e *UnaryOperator) Type() cxxtype.Type { return e.Ty }

// NewExpr is a `new T` allocation. Decl is the allocator function chosen for
// this new-expression; its IsNullCheckingNew flag decides whether the
// topmost pointer position is Nullable or NonNull (spec.md §4.5 New
// expression).
type NewExpr struct {
	exprBase
	Decl *cxxtype.FuncDecl
	Ty   cxxtype.Type
}

func (e *NewExpr) Type() cxxtype.Type { return e.Ty }

// ArraySubscriptExpr is `base[index]`; Base must have pointer type.
type ArraySubscriptExpr struct {
	exprBase
	Base  Expr
	Index Expr
	Ty    cxxtype.Type
}

func (e *ArraySubscriptExpr) Type() cxxtype.Type { return e.Ty }

// ThisExpr is the implicit `this` pointer inside a non-static member
// function; it is always NonNull at its topmost position (spec.md §4.5).
type ThisExpr struct {
	exprBase
	Ty cxxtype.Type
}

func (e *ThisExpr) Type() cxxtype.Type { return e.Ty }

// BinaryOp enumerates the binary operators the flow-sensitive transfer
// distinguishes; all others are opaque to this core.
type BinaryOp int

const (
	BinaryEQ BinaryOp = iota
	BinaryNE
	BinaryOther
)

// BinaryOperator is a binary operator application.
type BinaryOperator struct {
	exprBase
	Op       BinaryOp
	LHS, RHS Expr
	Ty       cxxtype.Type
}

func (e *BinaryOperator) Type() cxxtype.Type { return e.Ty }

// NullPointerLiteralExpr is `nullptr`, or an integer literal `0` used at
// pointer type.
type NullPointerLiteralExpr struct {
	exprBase
	Ty cxxtype.Type
}

func (e *NullPointerLiteralExpr) Type() cxxtype.Type { return e.Ty }
