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

// Package pointer implements spec.md §4.2: counting the number of pointer
// positions reached by the structural walk of §4.3, independent of any
// nullability bookkeeping. Every sugar kind delegates straight to its
// desugared form, which is what makes the "canonical equivalence" testable
// property (spec.md §8) hold by construction: two sugared spellings of the
// same canonical type always recurse to the same canonical node.
package pointer

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
)

// CountInType returns the number of pointer positions in T.
func CountInType(t cxxtype.Type) int {
	if t == nil {
		return 0
	}
	switch v := t.(type) {
	case *cxxtype.PointerType:
		return 1 + CountInType(v.Pointee)
	case *cxxtype.ReferenceType:
		return CountInType(v.Pointee)
	case *cxxtype.ArrayType:
		return CountInType(v.Element)
	case *cxxtype.FunctionProtoType:
		n := CountInType(v.Return)
		for _, p := range v.Params {
			n += CountInType(p)
		}
		return n
	case *cxxtype.RecordType:
		return countInRecordDecl(v.Decl)
	case *cxxtype.AliasTemplateSpecializationType:
		return CountInType(v.Underlying)
	case *cxxtype.ClassTemplateSpecializationType:
		return CountInType(v.Underlying)
	case *cxxtype.SubstTemplateTypeParamType:
		return CountInType(v.CanonicalType)
	case *cxxtype.TemplateTypeParamType:
		return 0
	case *cxxtype.ElaboratedType:
		return CountInType(v.Named)
	case *cxxtype.AttributedType:
		return CountInType(v.Modified)
	case *cxxtype.OtherSugarType:
		return CountInType(v.Underlying)
	case *cxxtype.BuiltinType:
		return 0
	default:
		return 0
	}
}

// countInRecordDecl counts the pointer positions contributed by a record's
// own template arguments (if it is a class-template specialization) plus
// everything contributed by its lexically enclosing records (spec.md §4.2
// "pointers_in_type(declaration_context D) walks the enclosing record
// types").
func countInRecordDecl(d *cxxtype.RecordDecl) int {
	if d == nil {
		return 0
	}
	n := CountInDeclContext(d.Enclosing)
	if d.Spec != nil {
		for _, a := range d.Spec.Args {
			n += CountInTemplateArg(a)
		}
	}
	return n
}

// CountInDeclContext counts the pointer positions in an enclosing
// declaration context D (spec.md §4.2).
func CountInDeclContext(d *cxxtype.RecordDecl) int {
	return countInRecordDecl(d)
}

// CountInTemplateArg counts the pointer positions in a template argument,
// recursing into type arguments and pack elements (spec.md §4.2).
func CountInTemplateArg(a cxxtype.TemplateArgument) int {
	switch a.Kind {
	case cxxtype.TemplateArgType:
		return CountInType(a.Type)
	case cxxtype.TemplateArgPack:
		n := 0
		for _, elem := range a.Pack {
			n += CountInTemplateArg(elem)
		}
		return n
	default:
		return 0
	}
}

// CountInExpr counts the pointer positions for an expression, using the
// expression's own type except for a bound-member placeholder, for which it
// uses the member declaration's type instead (spec.md §4.2).
func CountInExpr(e cxxast.Expr) int {
	if m, ok := e.(*cxxast.MemberExpr); ok && m.IsBoundMember {
		return CountInType(m.Member.Type)
	}
	return CountInType(e.Type())
}
