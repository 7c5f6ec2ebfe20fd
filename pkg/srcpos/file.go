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

import (
	"fmt"
	"os"

	"github.com/consensys/go-parsec/pkg/parsec"
)

// File represents a given source file (typically stored on disk).
type File struct {
	filename string
	contents []rune
}

// NewFile constructs a new source file from a given byte array.
func NewFile(filename string, bytes []byte) *File {
	contents := []rune(string(bytes))
	return &File{filename, contents}
}

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))

	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", n, err)
		}

		files[i] = *NewFile(n, bytes)
	}

	return files, nil
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string { return s.filename }

// Contents returns the contents of this source file.
func (s *File) Contents() []rune { return s.contents }

// Stream adapts this file's contents into the rune Stream a parsec grammar
// consumes.
func (s *File) Stream() parsec.Stream[rune] {
	return parsec.FromSlice(s.contents)
}

// SyntaxError constructs a syntax error over a given span of this file with
// a given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// Diagnose converts a ParseError reported by a parsec grammar run over this
// file's Stream into a SyntaxError carrying line/column context. It is the
// bridge between the plain offset a ParseError knows about and the
// line-oriented location a human (or an LSP client) wants to see.
func (s *File) Diagnose(err parsec.ParseError) *SyntaxError {
	return s.SyntaxError(PointSpan(err.Pos().Index()), err.Error())
}

// FindFirstEnclosingLine determines the first line in this source file
// which encloses the start of a span. Observe that, if the position is
// beyond the bounds of the source file then the last physical line is
// returned. Also, the returned line is not guaranteed to enclose the entire
// span, as these can cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	index := span.start
	num := 1
	start := 0

	for i := 0; i < len(s.contents); i++ {
		if i == index {
			end := findEndOfLine(index, s.contents)
			return Line{s.contents, Span{start, end}, num}
		} else if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}

	return Line{s.contents, Span{start, len(s.contents)}, num}
}

// SyntaxError is a structured error which retains the span into the
// original file where an error occurred, along with an error message. It
// implements the standard error interface and additionally exposes
// line/column detail via FirstEnclosingLine.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the underlying source file that this syntax error
// covers.
func (p *SyntaxError) SourceFile() *File { return p.srcfile }

// Span returns the span of the original text on which this error is
// reported.
func (p *SyntaxError) Span() Span { return p.span }

// Message returns the message to be reported.
func (p *SyntaxError) Message() string { return p.msg }

// Error implements the error interface, rendering a "file:line:col: msg"
// diagnostic.
func (p *SyntaxError) Error() string {
	line := p.FirstEnclosingLine()
	col := line.Column(p.span.start)

	return fmt.Sprintf("%s:%s: %s", p.srcfile.filename, fmtLoc(line.Number(), col), p.msg)
}

// FirstEnclosingLine determines the first line in this source file to which
// this error is associated.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}
