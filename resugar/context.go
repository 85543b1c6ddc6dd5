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

// Package resugar implements spec.md §4.3: the type-nullability walker, the
// core resugaring algorithm that recovers nullability annotations written on
// sugared types (aliases, template specializations, qualified names) after
// they have been desugared to a canonical form.
package resugar

import (
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
)

// Vector is an alias for kind.Vector, kept local so this package's exported
// signatures read naturally.
type Vector = kind.Vector

// TemplateContext is a stack-allocated record chain mapping a template's
// substituted parameters back to the sugared arguments written at some use
// site. Extends links to the lexically enclosing template's context;
// ArgContext points to the context that was active when Args itself was
// written, which is what makes resugaring through nested qualified names and
// aliases-of-aliases correct (spec.md §3, §9 "Template resugaring"). Never
// retained past the walk that created it.
type TemplateContext struct {
	// AssociatedDecl is the template declaration (a *cxxtype.ClassTemplateDecl
	// or *cxxtype.AliasTemplateDecl) whose parameters Args substitutes.
	AssociatedDecl any
	// Args is the sugared argument list written at this use site, or nil if
	// the partial-specialization adjustment cleared it (spec.md §4.3
	// "Partial specialization adjustment").
	Args []cxxtype.TemplateArgument
	// Extends is the lexically enclosing template's context.
	Extends *TemplateContext
	// ArgContext is the context in which Args was itself written.
	ArgContext *TemplateContext
}

// SubstitutionHook customizes what happens at a substituted
// template-type-parameter node (spec.md §4.3 "Substitution hook", §9). If it
// returns ok == true, the returned vector is appended verbatim and the
// generic substitution sub-walk is skipped. The returned vector's length
// must equal pointer.CountInType(param's canonical type); callers that
// violate this contract get a VectorLengthMismatch from the caller that
// consumes the walker's output (spec.md §4.5 "Length self-check"), not from
// the walker itself.
type SubstitutionHook func(current *TemplateContext, subst *cxxtype.SubstTemplateTypeParamType) (vector Vector, ok bool)
