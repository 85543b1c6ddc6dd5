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

// Package orderedmap is a generic map that also remembers insertion order,
// used by package lattice for the ExprNullability map (spec.md §4.5,
// "insert-if-absent maps" design note): iteration order has no effect on
// analysis semantics, but a deterministic order makes tests and any future
// diagnostic rendering reproducible.
package orderedmap

type OrderedMap[K comparable, V any] struct {
	inner map[K]V
	keys  []K
}

func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{inner: make(map[K]V)}
}

func (m *OrderedMap[K, V]) Load(key K) (V, bool) {
	v, ok := m.inner[key]
	return v, ok
}

func (m *OrderedMap[K, V]) Store(key K, value V) {
	if _, ok := m.inner[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.inner[key] = value
}

// StoreIfAbsent stores value under key only if key is not already present,
// reporting whether the store happened. This is the insert-if-absent
// primitive the non-flow-sensitive transfer relies on (spec.md §4.5):
// earlier results stick even if a later rule visits the same expression
// again.
func (m *OrderedMap[K, V]) StoreIfAbsent(key K, value V) bool {
	if _, ok := m.inner[key]; ok {
		return false
	}
	m.Store(key, value)
	return true
}

func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// OrderedRange visits every entry in insertion order, stopping early if f
// returns false.
func (m *OrderedMap[K, V]) OrderedRange(f func(key K, value V) bool) {
	for _, k := range m.keys {
		if !f(k, m.inner[k]) {
			return
		}
	}
}
