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
	"github.com/kiwiwarmnfuzzy/ptrnull/resugar"
)

// callSubstitutionHook implements spec.md §4.5's call-expression
// substitution hook: it resugars a substituted template-type-parameter only
// when the callee is (after stripping implicit casts) a direct reference to
// the function template itself and the parameter's index falls within the
// explicitly written template-argument list. Argument-deduced parameters
// are explicitly out of scope (spec.md §4.5 "Explicit TODO").
func callSubstitutionHook(e *cxxast.CallExpr) resugar.SubstitutionHook {
	return func(_ *resugar.TemplateContext, subst *cxxtype.SubstTemplateTypeParamType) (kind.Vector, bool) {
		if subst.Param.IsPack {
			return nil, false
		}

		ref, ok := stripImplicitCasts(e.Callee).(*cxxast.DeclRefExpr)
		if !ok {
			return nil, false
		}
		fn, ok := ref.Decl.(*cxxtype.FuncDecl)
		if !ok || subst.Param.AssociatedDecl != fn {
			return nil, false
		}

		i := subst.Param.Index
		if i < 0 || i >= len(e.ExplicitTemplateArgs) {
			return nil, false
		}
		arg := e.ExplicitTemplateArgs[i]
		if arg.Kind != cxxtype.TemplateArgType {
			return nil, false
		}

		vec, err := resugar.GetAnnotations(arg.Type, nil)
		if err != nil {
			return nil, false
		}
		return vec, true
	}
}

// stripImplicitCasts unwraps CastExpr layers around e, per spec.md §4.5's
// "after stripping implicit casts" wording for the call-expression rule.
func stripImplicitCasts(e cxxast.Expr) cxxast.Expr {
	for {
		c, ok := e.(*cxxast.CastExpr)
		if !ok {
			return e
		}
		e = c.Sub
	}
}
