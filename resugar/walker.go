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

package resugar

import (
	"errors"

	"github.com/kiwiwarmnfuzzy/ptrnull/config"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
)

// ErrBrokenTypeSugar is returned when a nullability attribute survives past
// the type it modifies (spec.md §7 "Fatal").
var ErrBrokenTypeSugar = errors.New("resugar: nullability attribute survived past its modified type")

// ErrTemplateContextTooDeep is returned when resolving a substituted
// template parameter walks more than config.MaxTemplateContextDepth Extends
// links without finding a match (spec.md §7 "Fatal") — a malformed or
// cyclic TemplateContext chain, never produced by a real AST.
var ErrTemplateContextTooDeep = errors.New("resugar: TemplateContext chain exceeded MaxTemplateContextDepth")

// GetAnnotations walks t and returns its nullability vector, resugaring
// through template aliases, class-template specializations, and qualified
// names (spec.md §4.3). hook may be nil.
func GetAnnotations(t cxxtype.Type, hook SubstitutionHook) (Vector, error) {
	w := &walker{hook: hook, out: Vector{}}
	if err := w.walk(t); err != nil {
		return nil, err
	}
	return w.out, nil
}

// walker holds the mutable state threaded through the recursive structural
// walk: the single pending-annotation slot (spec.md §4.3's "pending-annotation
// rule") and the current TemplateContext used to resugar substituted
// template parameters.
type walker struct {
	hook    SubstitutionHook
	pending cxxtype.AttrKind
	ctx     *TemplateContext
	out     Vector
}

func (w *walker) emit(k kind.Nullability) {
	w.out = append(w.out, k)
}

func attrToKind(a cxxtype.AttrKind) kind.Nullability {
	switch a {
	case cxxtype.AttrNonnull:
		return kind.NonNull
	case cxxtype.AttrNullable:
		return kind.Nullable
	case cxxtype.AttrNullUnspecified:
		return kind.Unspecified
	default:
		return kind.Unspecified
	}
}

// walk dispatches on t's structural kind, mutating w.out and w.pending.
func (w *walker) walk(t cxxtype.Type) error {
	switch v := t.(type) {
	case *cxxtype.AttributedType:
		return w.walkAttributed(v)
	case *cxxtype.PointerType:
		w.emit(attrToKind(w.pending))
		w.pending = cxxtype.AttrNone
		return w.walk(v.Pointee)
	case *cxxtype.ReferenceType:
		w.pending = cxxtype.AttrNone
		return w.walk(v.Pointee)
	case *cxxtype.ArrayType:
		w.pending = cxxtype.AttrNone
		return w.walk(v.Element)
	case *cxxtype.FunctionProtoType:
		w.pending = cxxtype.AttrNone
		if err := w.walk(v.Return); err != nil {
			return err
		}
		for _, p := range v.Params {
			w.pending = cxxtype.AttrNone
			if err := w.walk(p); err != nil {
				return err
			}
		}
		return nil
	case *cxxtype.RecordType:
		return w.walkRecord(v)
	case *cxxtype.AliasTemplateSpecializationType:
		return w.walkAliasSpecialization(v)
	case *cxxtype.ClassTemplateSpecializationType:
		return w.walkClassSpecialization(v)
	case *cxxtype.SubstTemplateTypeParamType:
		return w.walkSubstTemplateTypeParam(v)
	case *cxxtype.ElaboratedType:
		return w.walkElaborated(v)
	case *cxxtype.OtherSugarType:
		// transparent sugar: pending survives through, per spec.md §4.3
		// "any other sugar: desugar one step and recurse".
		return w.walk(v.Underlying)
	default:
		// Any other non-sugar type (builtin, unsubstituted template type
		// parameter, ...): drop pending, no pointer positions.
		w.pending = cxxtype.AttrNone
		return nil
	}
}

func (w *walker) walkAttributed(v *cxxtype.AttributedType) error {
	// "if two annotations are seen without an intervening pointer, the
	// outer one wins": only take this attribute if nothing is pending yet.
	if w.pending == cxxtype.AttrNone {
		w.pending = v.Attr
	}
	if err := w.walk(v.Modified); err != nil {
		return err
	}
	if w.pending != cxxtype.AttrNone {
		return ErrBrokenTypeSugar
	}
	return nil
}

func (w *walker) walkRecord(v *cxxtype.RecordType) error {
	w.pending = cxxtype.AttrNone
	if err := w.walkDeclContext(v.Decl.Enclosing); err != nil {
		return err
	}
	if v.Decl.Spec != nil {
		for _, a := range v.Decl.Spec.Args {
			if err := w.walkTemplateArg(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) walkDeclContext(d *cxxtype.RecordDecl) error {
	if d == nil {
		return nil
	}
	if err := w.walkDeclContext(d.Enclosing); err != nil {
		return err
	}
	if d.Spec != nil {
		for _, a := range d.Spec.Args {
			if err := w.walkTemplateArg(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkTemplateArg walks a canonical (un-sugared) template argument, used
// when recursing into a RecordType's own specialization args.
func (w *walker) walkTemplateArg(a cxxtype.TemplateArgument) error {
	w.pending = cxxtype.AttrNone
	switch a.Kind {
	case cxxtype.TemplateArgType:
		return w.walk(a.Type)
	case cxxtype.TemplateArgPack:
		for _, elem := range a.Pack {
			if err := w.walkTemplateArg(elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) walkAliasSpecialization(v *cxxtype.AliasTemplateSpecializationType) error {
	// Recognize an alias-nullability annotation: `[[clang::annotate("Nullable"|
	// "Nonnull"|"Nullability_Unspecified")]]` on the alias template maps
	// directly to the aliased type's outermost pointer (spec.md §4.3, §6).
	// An already-pending outer attribute still wins.
	if w.pending == cxxtype.AttrNone && v.Decl.AnnotationMarker != cxxtype.AttrNone {
		w.pending = v.Decl.AnnotationMarker
	}

	saved := w.ctx
	w.ctx = &TemplateContext{
		AssociatedDecl: v.Decl,
		Args:           v.Args,
		Extends:        saved,
		ArgContext:     saved,
	}
	err := w.walk(v.Underlying)
	w.ctx = saved
	return err
}

func (w *walker) walkClassSpecialization(v *cxxtype.ClassTemplateSpecializationType) error {
	w.pending = cxxtype.AttrNone
	var enclosing *cxxtype.RecordDecl
	if v.Underlying != nil {
		enclosing = v.Underlying.Decl.Enclosing
	}
	if err := w.walkDeclContext(enclosing); err != nil {
		return err
	}
	for _, a := range v.Args {
		if err := w.walkTemplateArgSugared(a); err != nil {
			return err
		}
	}
	if len(v.DefaultArgs) > 0 {
		for _, a := range v.DefaultArgs {
			// "without sugar": walked as canonical arguments.
			if err := w.walkTemplateArg(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkTemplateArgSugared walks a template argument exactly as written at a
// use site, preserving whatever sugar (attributes, nested specializations)
// it carries.
func (w *walker) walkTemplateArgSugared(a cxxtype.TemplateArgument) error {
	w.pending = cxxtype.AttrNone
	switch a.Kind {
	case cxxtype.TemplateArgType:
		return w.walk(a.Type)
	case cxxtype.TemplateArgPack:
		for _, elem := range a.Pack {
			if err := w.walkTemplateArgSugared(elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) walkSubstTemplateTypeParam(v *cxxtype.SubstTemplateTypeParamType) error {
	if w.hook != nil {
		if vec, ok := w.hook(w.ctx, v); ok {
			w.out = append(w.out, vec...)
			return nil
		}
	}

	depth := 0
	for rec := w.ctx; rec != nil; rec = rec.Extends {
		depth++
		if depth > config.MaxTemplateContextDepth {
			return ErrTemplateContextTooDeep
		}
		if rec.AssociatedDecl != v.Param.AssociatedDecl {
			continue
		}
		if rec.Args == nil {
			continue
		}
		idx := v.Param.Index
		if v.Param.IsPack {
			idx = len(rec.Args) - 1 - v.PackIndexFromTail
		}
		if idx < 0 || idx >= len(rec.Args) {
			continue
		}
		saved := w.ctx
		w.ctx = rec.ArgContext
		err := w.walkTemplateArgSugared(rec.Args[idx])
		w.ctx = saved
		return err
	}

	// No match: fall through to the generic "visit underlying type" rule,
	// producing Unspecified entries (spec.md §4.3).
	w.pending = cxxtype.AttrNone
	return w.walk(v.CanonicalType)
}

func (w *walker) walkElaborated(v *cxxtype.ElaboratedType) error {
	origCtx := w.ctx

	var chain []*TemplateContext
	for i := len(v.Qualifier) - 1; i >= 0; i-- {
		comp := v.Qualifier[i]
		if comp.Decl == nil {
			continue // not specializable
		}
		args := comp.Args
		if comp.InstantiationPatternIsPartial {
			// Partial specialization adjustment (spec.md §4.3): the
			// written primary-template argument list doesn't map 1:1 to
			// the partial pattern's parameters, so fall back to
			// Unspecified for params bound by this pattern.
			args = nil
		}
		chain = append(chain, &TemplateContext{
			AssociatedDecl: comp.Decl,
			Args:           args,
			ArgContext:     origCtx,
		})
	}
	for i := 0; i < len(chain)-1; i++ {
		chain[i].Extends = chain[i+1]
	}
	if len(chain) > 0 {
		chain[len(chain)-1].Extends = origCtx
		w.ctx = chain[0]
	}

	err := w.walk(v.Named)
	w.ctx = origCtx
	return err
}
