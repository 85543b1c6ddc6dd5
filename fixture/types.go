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

package fixture

import "github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"

// Int returns a fresh "int" BuiltinType.
func Int() *cxxtype.BuiltinType { return &cxxtype.BuiltinType{Name: "int"} }

// Ptr wraps pointee in an unannotated PointerType.
func Ptr(pointee cxxtype.Type) *cxxtype.PointerType {
	return &cxxtype.PointerType{Pointee: pointee}
}

// NonnullPtr wraps pointee in a pointer annotated _Nonnull.
func NonnullPtr(pointee cxxtype.Type) *cxxtype.AttributedType {
	return &cxxtype.AttributedType{Attr: cxxtype.AttrNonnull, Modified: Ptr(pointee)}
}

// NullablePtr wraps pointee in a pointer annotated _Nullable.
func NullablePtr(pointee cxxtype.Type) *cxxtype.AttributedType {
	return &cxxtype.AttributedType{Attr: cxxtype.AttrNullable, Modified: Ptr(pointee)}
}
