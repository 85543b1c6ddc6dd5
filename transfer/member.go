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
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxast"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/lattice"
	"github.com/kiwiwarmnfuzzy/ptrnull/pointer"
	"github.com/kiwiwarmnfuzzy/ptrnull/resugar"
)

// memberSubstitutionHook implements spec.md §4.5's member-access
// substitution hook: it consults the base expression's already-computed
// nullability and the base type's class-template specialization info
// directly, rather than the walker's internal TemplateContext chain.
func memberSubstitutionHook(base cxxast.Expr, lat *lattice.Lattice) resugar.SubstitutionHook {
	return func(_ *resugar.TemplateContext, subst *cxxtype.SubstTemplateTypeParamType) (kind.Vector, bool) {
		if subst.Param.IsPack {
			return nil, false // spec.md §4.5 "Pack arguments: unhandled"
		}

		rt := resolveRecordType(base.Type())
		if rt == nil || rt.Decl.Spec == nil {
			return nil, false
		}
		spec := rt.Decl.Spec
		if subst.Param.AssociatedDecl != spec.TemplateDecl {
			return nil, false
		}

		i := subst.Param.Index
		if i < 0 || i >= len(spec.Args) {
			return nil, false
		}

		baseVec, ok := lat.ExprNullability.Load(base)
		if !ok {
			return nil, false
		}

		before := pointer.CountInDeclContext(rt.Decl.Enclosing)
		for j := 0; j < i; j++ {
			before += pointer.CountInTemplateArg(spec.Args[j])
		}
		slice := pointer.CountInTemplateArg(spec.Args[i])
		if before+slice > len(baseVec) {
			return nil, false
		}
		return baseVec[before : before+slice], true
	}
}

// resolveRecordType desugars t one step at a time until it reaches a
// canonical RecordType, or returns nil if t never bottoms out at one (e.g.
// it's a builtin or a pointer).
func resolveRecordType(t cxxtype.Type) *cxxtype.RecordType {
	for {
		switch v := t.(type) {
		case *cxxtype.RecordType:
			return v
		case *cxxtype.ClassTemplateSpecializationType:
			return v.Underlying
		case *cxxtype.AliasTemplateSpecializationType:
			t = v.Underlying
		case *cxxtype.ElaboratedType:
			t = v.Named
		case *cxxtype.AttributedType:
			t = v.Modified
		case *cxxtype.OtherSugarType:
			t = v.Underlying
		default:
			return nil
		}
	}
}
