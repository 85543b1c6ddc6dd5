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

// TemplateArgKind discriminates the two shapes of TemplateArgument the core
// cares about: spec.md §4.2 says pointer counting "recurses into type
// arguments and into pack elements"; non-type template arguments (integers,
// etc) contribute no pointer positions and are represented as neither kind
// and simply skipped.
type TemplateArgKind int

const (
	// TemplateArgNonType is a non-type argument (an integer, an enum
	// value, ...): never recursed into.
	TemplateArgNonType TemplateArgKind = iota
	// TemplateArgType is a type argument.
	TemplateArgType
	// TemplateArgPack is a parameter-pack argument, itself a sequence of
	// further template arguments.
	TemplateArgPack
)

// TemplateArgument is one element of a template argument list, as written at
// a use site (sugared) or as canonicalized, depending on where it was
// captured from.
type TemplateArgument struct {
	Kind TemplateArgKind
	Type Type               // valid iff Kind == TemplateArgType
	Pack []TemplateArgument // valid iff Kind == TemplateArgPack
}
