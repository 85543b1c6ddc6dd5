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

// Package cxxtype models the slice of a C++-like type system that the
// nullability core needs: canonical types plus the sugar nodes (attributed
// types, template specializations, elaborated names, substituted template
// parameters) that the structural walker in package resugar recovers
// annotations through. Construction of these types from real source is an
// external collaborator (spec.md §1); this package only defines the shapes.
package cxxtype

// Kind discriminates the structural form of a Type for the walker's
// type-switch dispatch (spec.md §4.3).
type Kind int

const (
	// Builtin is any type with no pointer positions of its own (int, bool,
	// a non-pointer class type with no pointer members we care to recurse
	// into at this node, a dependent placeholder, etc).
	Builtin Kind = iota
	// Pointer is a single raw-pointer type node: one pointer position.
	Pointer
	// Reference is a C++ reference type; it drops pending annotations and
	// recurses into the referenced type without consuming a position itself.
	Reference
	// Array is a (possibly multi-dimensional) array type.
	Array
	// FunctionProto is a function-prototype type: a return type plus an
	// ordered parameter list.
	FunctionProto
	// Record is a canonical class/struct type, optionally itself a
	// class-template specialization (see RecordDecl.Spec).
	Record
	// AliasTemplateSpecialization is the alias form of template-specialization
	// sugar: `using Ptr = T*;` instantiated as `Ptr<int>`.
	AliasTemplateSpecialization
	// ClassTemplateSpecialization is the class form of template-specialization
	// sugar: `P<int*, int*>` before it desugars to its canonical Record.
	ClassTemplateSpecialization
	// SubstTemplateTypeParam is a template-type-parameter node that has been
	// substituted during instantiation; the walker resugars it by consulting
	// the TemplateContext chain.
	SubstTemplateTypeParam
	// TemplateTypeParam is an unsubstituted template type parameter (only
	// seen inside an uninstantiated template definition).
	TemplateTypeParam
	// Elaborated is a qualified name `A::B::C` wrapping a named type.
	Elaborated
	// Attributed is any type wrapped in a nullability attribute.
	Attributed
	// OtherSugar is any sugar node not otherwise distinguished above; the
	// walker desugars one step and recurses (spec.md §4.3 "any other sugar").
	OtherSugar
)

// Type is the structural interface the walker dispatches on. All concrete
// types below implement it.
type Type interface {
	Kind() Kind
	String() string
}

// BuiltinType is a type with no pointer positions (int, bool, void, a
// dependent placeholder, ...).
type BuiltinType struct {
	Name string
}

func (t *BuiltinType) Kind() Kind    { return Builtin }
func (t *BuiltinType) String() string { return t.Name }

// PointerType is a single raw pointer: exactly one pointer position.
type PointerType struct {
	Pointee Type
}

func (t *PointerType) Kind() Kind     { return Pointer }
func (t *PointerType) String() string { return t.Pointee.String() + "*" }

// ReferenceType is a C++ lvalue/rvalue reference.
type ReferenceType struct {
	Pointee Type
}

func (t *ReferenceType) Kind() Kind     { return Reference }
func (t *ReferenceType) String() string { return t.Pointee.String() + "&" }

// ArrayType is a (constant or incomplete) array.
type ArrayType struct {
	Element Type
}

func (t *ArrayType) Kind() Kind     { return Array }
func (t *ArrayType) String() string { return t.Element.String() + "[]" }

// FunctionProtoType is a function type: return type plus parameter types.
type FunctionProtoType struct {
	Return Type
	Params []Type
}

func (t *FunctionProtoType) Kind() Kind { return FunctionProto }
func (t *FunctionProtoType) String() string {
	s := t.Return.String() + "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

// RecordType is a canonical class/struct type. If Decl.Spec is non-nil, this
// record is (the canonical form of) a class-template specialization.
type RecordType struct {
	Decl *RecordDecl
}

func (t *RecordType) Kind() Kind     { return Record }
func (t *RecordType) String() string { return t.Decl.Name }

// AliasTemplateSpecializationType is the alias-template sugar form: the type
// as written (`Ptr<int>`), which desugars to Underlying.
type AliasTemplateSpecializationType struct {
	Decl       *AliasTemplateDecl
	Args       []TemplateArgument // as written at the use site
	Underlying Type               // the desugared type the alias expands to
}

func (t *AliasTemplateSpecializationType) Kind() Kind { return AliasTemplateSpecialization }
func (t *AliasTemplateSpecializationType) String() string {
	return t.Decl.Name + "<...>"
}

// ClassTemplateSpecializationType is the class-template sugar form.
// InstantiationPatternIsPartial records whether the specialization this type
// names was produced from a partial specialization pattern, in which case
// Args does not correspond 1:1 to the primary template's parameter list
// (spec.md §4.3 "Partial specialization adjustment").
type ClassTemplateSpecializationType struct {
	Decl                            *ClassTemplateDecl
	Args                            []TemplateArgument // as written
	DefaultArgs                     []TemplateArgument // defaulted, unwritten, no sugar
	InstantiationPatternIsPartial   bool
	Underlying                      *RecordType
}

func (t *ClassTemplateSpecializationType) Kind() Kind { return ClassTemplateSpecialization }
func (t *ClassTemplateSpecializationType) String() string {
	return t.Decl.Name + "<...>"
}

// SubstTemplateTypeParamType is a template-type-parameter occurrence that has
// been substituted by instantiation. Param.Index is the parameter's declared
// index; for a pack parameter the walker ignores it and locates the
// substituted element with PackIndexFromTail instead.
type SubstTemplateTypeParamType struct {
	Param         *TemplateTypeParamDecl
	CanonicalType Type // the type actually substituted in, with no sugar
	// PackIndexFromTail is used only when Param.IsPack: the substituted
	// pack element's position counted from the end of the bound argument
	// list, so the index stays correct regardless of how many non-pack
	// parameters precede the pack (spec.md §4.3 "adjusted for pack-index
	// from the tail").
	PackIndexFromTail int
}

func (t *SubstTemplateTypeParamType) Kind() Kind { return SubstTemplateTypeParam }
func (t *SubstTemplateTypeParamType) String() string {
	return "subst(" + t.Param.Name + ")"
}

// TemplateTypeParamType is an unsubstituted template parameter occurrence.
type TemplateTypeParamType struct {
	Decl *TemplateTypeParamDecl
}

func (t *TemplateTypeParamType) Kind() Kind     { return TemplateTypeParam }
func (t *TemplateTypeParamType) String() string { return t.Decl.Name }

// NestedNameComponent is one `Foo::` segment of a qualified name. If Args is
// non-nil, this component is itself a (specializable) template
// specialization and contributes a TemplateContext record during the walk.
type NestedNameComponent struct {
	Decl *ClassTemplateDecl // nil if this component isn't a template
	Args []TemplateArgument
	// InstantiationPatternIsPartial marks that this component's
	// specialization was produced from a partial specialization pattern
	// (spec.md §4.3 "Partial specialization adjustment").
	InstantiationPatternIsPartial bool
}

// ElaboratedType is a qualified name `A::B::C` wrapping a named type.
type ElaboratedType struct {
	Qualifier []NestedNameComponent // left-to-right, outermost first
	Named     Type
}

func (t *ElaboratedType) Kind() Kind     { return Elaborated }
func (t *ElaboratedType) String() string { return t.Named.String() }

// AttrKind is the nullability attribute spelled directly on a type, or None
// if no attribute was written at this node.
type AttrKind int

const (
	AttrNone AttrKind = iota
	AttrNonnull
	AttrNullable
	AttrNullUnspecified
)

// AttributedType wraps Modified in a nullability (or other, ignored)
// attribute.
type AttributedType struct {
	Attr     AttrKind
	Modified Type
}

func (t *AttributedType) Kind() Kind     { return Attributed }
func (t *AttributedType) String() string { return t.Modified.String() }

// OtherSugarType is any sugar the walker doesn't special-case (spec.md §4.3
// "any other sugar"): plain typedefs, decltype, etc. It desugars one step.
type OtherSugarType struct {
	Underlying Type
}

func (t *OtherSugarType) Kind() Kind     { return OtherSugar }
func (t *OtherSugarType) String() string { return t.Underlying.String() }
