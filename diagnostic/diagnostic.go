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

package diagnostic

import "fmt"

// Code classifies a non-fatal recoverable condition from spec.md §7: the
// core never logs or renders on its own, it only reports these through a
// caller-supplied Sink.
type Code string

const (
	CodeVectorLengthMismatch     Code = "vector_length_mismatch"
	CodeMissingChildNullability  Code = "missing_child_nullability"
	CodeUnhandledTemplateConstruct Code = "unhandled_template_construct"
)

// Diagnostic is a single non-fatal recoverable condition surfaced by a
// transfer or flow rule.
type Diagnostic struct {
	Code    Code
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Sink receives diagnostics as the analysis produces them. A nil Sink is
// legal; callers that don't care about recoverable conditions pass nil and
// every rule's fallback behavior still applies, just silently.
type Sink func(Diagnostic)

// Emit reports d to sink if sink is non-nil.
func Emit(sink Sink, d Diagnostic) {
	if sink != nil {
		sink(d)
	}
}
