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

package cxxtype

// RecordDecl is a class/struct declaration. Enclosing is the lexically
// enclosing record, if this record is nested, used by
// pointer.CountInDeclContext to walk enclosing record types (spec.md §4.2).
// Spec is non-nil iff this record is (the canonical form of) a class-template
// specialization.
type RecordDecl struct {
	Name      string
	Enclosing *RecordDecl
	Spec      *ClassTemplateSpecInfo
}

// ClassTemplateSpecInfo records the canonical template arguments bound to a
// class-template specialization's RecordDecl. This is what the member-access
// substitution hook (spec.md §4.5) consults via the base expression's type.
type ClassTemplateSpecInfo struct {
	TemplateDecl *ClassTemplateDecl
	Args         []TemplateArgument
}

// ClassTemplateDecl names a class template (the thing a
// ClassTemplateSpecializationType or a RecordDecl.Spec refers to).
type ClassTemplateDecl struct {
	Name   string
	Params []*TemplateTypeParamDecl
}

// AliasTemplateDecl names a type-alias template. AnnotationMarker records an
// `[[clang::annotate(...)]]`-style marker on the alias itself (spec.md §4.3,
// §6): when not AttrNone, a use of this alias maps directly to the
// corresponding nullability kind on the aliased type's outermost pointer.
type AliasTemplateDecl struct {
	Name             string
	AnnotationMarker AttrKind
}

// TemplateTypeParamDecl names a template type parameter of some enclosing
// template declaration. Index is its declared position; IsPack is true for a
// parameter pack.
type TemplateTypeParamDecl struct {
	Name    string
	Index   int
	IsPack  bool
	// AssociatedDecl is the template (ClassTemplateDecl or
	// AliasTemplateDecl) that declares this parameter, used to match a
	// SubstTemplateTypeParamType back to the TemplateContext record that
	// substituted it (spec.md §4.3).
	AssociatedDecl any
}

// FuncDecl is a function or method declaration. TemplateParams is non-nil
// iff this is a function template; each parameter's AssociatedDecl points
// back to this FuncDecl, which is what the call-expression substitution
// hook matches a SubstTemplateTypeParamType against (spec.md §4.5 "Call").
type FuncDecl struct {
	Name           string
	Params         []*VarDecl
	Return         Type
	Recv           *VarDecl // non-nil for methods
	TemplateParams []*TemplateTypeParamDecl
	// IsNullCheckingNew marks a `new`-expression allocator that is defined
	// to null-check on failure rather than throw (spec.md §4.5 New
	// expression).
	IsNullCheckingNew bool
}

// VarDecl is a variable, parameter, or field declaration.
type VarDecl struct {
	Name string
	Type Type
}

// FieldDecl is a non-static data member declaration.
type FieldDecl struct {
	Name string
	Type Type
}
