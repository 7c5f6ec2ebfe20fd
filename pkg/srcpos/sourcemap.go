// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package srcpos

import "fmt"

// Map maps terms from an AST to spans in the originating string. This is
// important for error handling when we wish to highlight exactly where, in
// the original source file, a given AST node came from — something a
// parsec grammar's own error type can't do on its own, since by the time an
// AST node exists the parse that produced it has already finished and its
// ParseError, if any, is long gone.
type Map[T comparable] struct {
	mapping map[T]Span
	srcfile File
}

// NewMap constructs an initially empty source map for a given file.
func NewMap[T comparable](srcfile File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the underlying source file on which this map operates.
func (p *Map[T]) Source() File { return p.srcfile }

// Put registers a new AST item with a given span. Panics if the item is
// already registered.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", any(item)))
	}

	p.mapping[item] = span
}

// Has checks whether a given item is contained within this source map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get determines the span associated with a given AST item. Panics if the
// item is not registered with this source map.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}

	panic(fmt.Sprintf("invalid source map key: %v", any(item)))
}

// JoinMaps incorporates all mappings from a source map into a target map of
// a possibly different node type, applying mapping to translate keys.
func JoinMaps[S comparable, T comparable](target *Map[S], source *Map[T], mapping func(T) S) {
	for i, k := range source.mapping {
		target.Put(mapping(i), k)
	}
}

// Maps aggregates several per-file Maps so that a multi-file parse (several
// srcpos.File's worth of grammar, say) can look a node's span up without the
// caller having to know which underlying file it came from.
type Maps[T comparable] struct {
	maps []Map[T]
}

// NewMaps constructs an (initially empty) set of source maps. The intention
// is that this is populated as each file is parsed.
func NewMaps[T comparable]() *Maps[T] {
	return &Maps[T]{}
}

// Has checks whether a given node has a mapping in one of the source maps
// embodied within.
func (p *Maps[T]) Has(node T) bool {
	for _, m := range p.maps {
		if m.Has(node) {
			return true
		}
	}

	return false
}

// SyntaxError constructs a syntax error for a given node contained within
// one of the source files managed by this set of source maps.
func (p *Maps[T]) SyntaxError(node T, msg string) *SyntaxError {
	for _, m := range p.maps {
		if m.Has(node) {
			span := m.Get(node)
			return m.srcfile.SyntaxError(span, msg)
		}
	}

	panic("missing mapping for source node")
}

// SyntaxErrors constructs a syntax error and wraps it as a single-element
// slice, for callers that accumulate errors from several nodes.
func (p *Maps[T]) SyntaxErrors(node T, msg string) []SyntaxError {
	err := p.SyntaxError(node, msg)
	return []SyntaxError{*err}
}

// Join a given source map into this set of source maps. The effect of this
// is that nodes recorded in the given source map can be accessed from this
// set.
func (p *Maps[T]) Join(srcmap *Map[T]) {
	p.maps = append(p.maps, *srcmap)
}

// Copy copies the source mapping for one node to the source mapping for
// another. The main use of this is when an existing node is expanded into
// some other nodes (e.g. during preprocessing).
func (p *Maps[T]) Copy(from, to T) {
	for _, m := range p.maps {
		if m.Has(from) {
			span := m.Get(from)
			m.Put(to, span)
			return
		}
	}
}
