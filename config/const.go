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

package config

// This file hosts non-user-configurable parameters --- these are for development and testing purposes only.

// MaxTemplateContextDepth bounds the TemplateContext chain's Extends links
// package resugar's walker will traverse while resolving a
// SubstTemplateTypeParamType before aborting with ErrTemplateContextTooDeep.
// This is a loop guard against malformed or cyclic fixtures feeding the
// walker; well-formed template nesting produced by a real AST never
// approaches this depth.
const MaxTemplateContextDepth = 256

// MaxCFGFixpointRounds bounds the reverse-postorder fixpoint loop in package
// driver. The analysis is one-shot per function over a CFG the framework
// already guarantees terminates, so this exists only as a defensive cap on
// malformed test fixtures with unreachable back-edges, not a tuning knob.
const MaxCFGFixpointRounds = 1000
