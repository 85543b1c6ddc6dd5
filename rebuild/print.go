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

package rebuild

import (
	"strings"

	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
)

// Print rebuilds t with v and renders the result as a surface-syntax
// string, e.g. "int * _Nonnull *". Supplementing spec.md §4.1's bracketed
// vector form, this is the printer half of C4 (spec.md §6 exports
// print_with_nullability).
func Print(t cxxtype.Type, v kind.Vector) (string, error) {
	rebuilt, err := Rebuild(t, v)
	if err != nil {
		return "", err
	}
	return PrintType(rebuilt), nil
}

// PrintType renders an already-sugared type without touching its
// nullability vector.
func PrintType(t cxxtype.Type) string {
	switch v := t.(type) {
	case *cxxtype.BuiltinType:
		return v.Name
	case *cxxtype.PointerType:
		return PrintType(v.Pointee) + " *"
	case *cxxtype.ReferenceType:
		return PrintType(v.Pointee) + " &"
	case *cxxtype.ArrayType:
		return PrintType(v.Element) + "[]"
	case *cxxtype.AttributedType:
		attr := attrSpelling(v.Attr)
		if attr == "" {
			return PrintType(v.Modified)
		}
		return PrintType(v.Modified) + " " + attr
	case *cxxtype.FunctionProtoType:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = PrintType(p)
		}
		return PrintType(v.Return) + "(" + strings.Join(params, ", ") + ")"
	case *cxxtype.RecordType:
		return v.Decl.Name
	case *cxxtype.ClassTemplateSpecializationType:
		return v.Decl.Name + "<" + printArgs(v.Args) + ">"
	case *cxxtype.AliasTemplateSpecializationType:
		return v.Decl.Name + "<" + printArgs(v.Args) + ">"
	case *cxxtype.ElaboratedType:
		return PrintType(v.Named)
	case *cxxtype.OtherSugarType:
		return PrintType(v.Underlying)
	case *cxxtype.SubstTemplateTypeParamType:
		return PrintType(v.CanonicalType)
	case *cxxtype.TemplateTypeParamType:
		return v.Decl.Name
	default:
		return "<?>"
	}
}

func printArgs(args []cxxtype.TemplateArgument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = printTemplateArg(a)
	}
	return strings.Join(parts, ", ")
}

func printTemplateArg(a cxxtype.TemplateArgument) string {
	switch a.Kind {
	case cxxtype.TemplateArgType:
		return PrintType(a.Type)
	case cxxtype.TemplateArgPack:
		return printArgs(a.Pack)
	default:
		return "<non-type>"
	}
}

func attrSpelling(a cxxtype.AttrKind) string {
	switch a {
	case cxxtype.AttrNonnull:
		return kind.NonNull.Spelling()
	case cxxtype.AttrNullable:
		return kind.Nullable.Spelling()
	case cxxtype.AttrNullUnspecified:
		return kind.Unspecified.Spelling()
	default:
		return ""
	}
}
