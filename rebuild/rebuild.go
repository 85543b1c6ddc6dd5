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

// Package rebuild implements spec.md §4.4: reconstructing a canonical type
// decorated with a given nullability vector, and pretty-printing the result.
package rebuild

import (
	"errors"

	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
)

// ErrVectorLengthMismatch is returned when the input vector is not fully
// consumed by the rebuild walk, or runs out before the walk finishes
// (spec.md §4.4, a programmer-error contract check).
var ErrVectorLengthMismatch = errors.New("rebuild: nullability vector length does not match type's pointer positions")

// Rebuild produces a type equivalent to t, sugared with AttributedType
// wrappers at every pointer position whose entry in v is not Unspecified.
// len(v) must equal pointer.CountInType(t); violating this is
// ErrVectorLengthMismatch.
func Rebuild(t cxxtype.Type, v kind.Vector) (cxxtype.Type, error) {
	r := &rebuilder{v: v}
	out, err := r.rebuild(t)
	if err != nil {
		return nil, err
	}
	if r.i != len(r.v) {
		return nil, ErrVectorLengthMismatch
	}
	return out, nil
}

type rebuilder struct {
	v kind.Vector
	i int
}

func (r *rebuilder) next() (kind.Nullability, error) {
	if r.i >= len(r.v) {
		return kind.Unspecified, ErrVectorLengthMismatch
	}
	k := r.v[r.i]
	r.i++
	return k, nil
}

func kindToAttr(k kind.Nullability) cxxtype.AttrKind {
	switch k {
	case kind.NonNull:
		return cxxtype.AttrNonnull
	case kind.Nullable:
		return cxxtype.AttrNullable
	default:
		return cxxtype.AttrNone
	}
}

func (r *rebuilder) rebuild(t cxxtype.Type) (cxxtype.Type, error) {
	switch v := t.(type) {
	case *cxxtype.PointerType:
		k, err := r.next()
		if err != nil {
			return nil, err
		}
		pointee, err := r.rebuild(v.Pointee)
		if err != nil {
			return nil, err
		}
		rebuilt := cxxtype.Type(&cxxtype.PointerType{Pointee: pointee})
		if attr := kindToAttr(k); attr != cxxtype.AttrNone {
			rebuilt = &cxxtype.AttributedType{Attr: attr, Modified: rebuilt}
		}
		return rebuilt, nil
	case *cxxtype.ReferenceType:
		pointee, err := r.rebuild(v.Pointee)
		if err != nil {
			return nil, err
		}
		return &cxxtype.ReferenceType{Pointee: pointee}, nil
	case *cxxtype.ArrayType:
		elem, err := r.rebuild(v.Element)
		if err != nil {
			return nil, err
		}
		return &cxxtype.ArrayType{Element: elem}, nil
	case *cxxtype.FunctionProtoType:
		ret, err := r.rebuild(v.Return)
		if err != nil {
			return nil, err
		}
		params := make([]cxxtype.Type, len(v.Params))
		for i, p := range v.Params {
			np, err := r.rebuild(p)
			if err != nil {
				return nil, err
			}
			params[i] = np
		}
		return &cxxtype.FunctionProtoType{Return: ret, Params: params}, nil
	case *cxxtype.RecordType:
		return r.rebuildRecord(v)
	default:
		// Builtin, (unsubstituted) TemplateTypeParam, or any sugar kind
		// unexpectedly present in an otherwise-canonical input: no pointer
		// position consumed, pass through unchanged.
		return t, nil
	}
}

func (r *rebuilder) rebuildRecord(v *cxxtype.RecordType) (cxxtype.Type, error) {
	newEnclosing, err := r.rebuildDeclContext(v.Decl.Enclosing)
	if err != nil {
		return nil, err
	}

	var newSpec *cxxtype.ClassTemplateSpecInfo
	var newArgs []cxxtype.TemplateArgument
	if v.Decl.Spec != nil {
		newArgs = make([]cxxtype.TemplateArgument, len(v.Decl.Spec.Args))
		for i, a := range v.Decl.Spec.Args {
			na, err := r.rebuildTemplateArg(a)
			if err != nil {
				return nil, err
			}
			newArgs[i] = na
		}
		newSpec = &cxxtype.ClassTemplateSpecInfo{TemplateDecl: v.Decl.Spec.TemplateDecl, Args: newArgs}
	}

	recordType := &cxxtype.RecordType{Decl: &cxxtype.RecordDecl{
		Name:      v.Decl.Name,
		Enclosing: newEnclosing,
		Spec:      newSpec,
	}}
	if newSpec == nil {
		return recordType, nil
	}
	// Rebuild the template-specialization sugar over the rebuilt arguments
	// so the result prints the same way the original written type would.
	return &cxxtype.ClassTemplateSpecializationType{
		Decl:       newSpec.TemplateDecl,
		Args:       newArgs,
		Underlying: recordType,
	}, nil
}

func (r *rebuilder) rebuildDeclContext(d *cxxtype.RecordDecl) (*cxxtype.RecordDecl, error) {
	if d == nil {
		return nil, nil
	}
	newEnclosing, err := r.rebuildDeclContext(d.Enclosing)
	if err != nil {
		return nil, err
	}
	var newSpec *cxxtype.ClassTemplateSpecInfo
	if d.Spec != nil {
		newArgs := make([]cxxtype.TemplateArgument, len(d.Spec.Args))
		for i, a := range d.Spec.Args {
			na, err := r.rebuildTemplateArg(a)
			if err != nil {
				return nil, err
			}
			newArgs[i] = na
		}
		newSpec = &cxxtype.ClassTemplateSpecInfo{TemplateDecl: d.Spec.TemplateDecl, Args: newArgs}
	}
	return &cxxtype.RecordDecl{Name: d.Name, Enclosing: newEnclosing, Spec: newSpec}, nil
}

func (r *rebuilder) rebuildTemplateArg(a cxxtype.TemplateArgument) (cxxtype.TemplateArgument, error) {
	switch a.Kind {
	case cxxtype.TemplateArgType:
		nt, err := r.rebuild(a.Type)
		if err != nil {
			return cxxtype.TemplateArgument{}, err
		}
		return cxxtype.TemplateArgument{Kind: cxxtype.TemplateArgType, Type: nt}, nil
	case cxxtype.TemplateArgPack:
		pack := make([]cxxtype.TemplateArgument, len(a.Pack))
		for i, elem := range a.Pack {
			ne, err := r.rebuildTemplateArg(elem)
			if err != nil {
				return cxxtype.TemplateArgument{}, err
			}
			pack[i] = ne
		}
		return cxxtype.TemplateArgument{Kind: cxxtype.TemplateArgPack, Pack: pack}, nil
	default:
		return a, nil
	}
}
