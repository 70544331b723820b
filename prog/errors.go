// This file is part of Brainfuck-Tools - https://github.com/apaz-cli/Brainfuck-Tools
//
// Copyright 2026 The Brainfuck-Tools Authors
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

package prog

import (
	"go/token"
	"strconv"

	"github.com/pkg/errors"
)

// ErrUnbalanced is the cause of all bracket matching errors.
var ErrUnbalanced = errors.New("unbalanced brackets")

// BracketKind tells which side of a bracket pair is missing.
type BracketKind int

// Bracket error kinds.
const (
	// ExcessEnd is a ']' with no open loop.
	ExcessEnd BracketKind = iota
	// Unclosed is a '[' that is never closed.
	Unclosed
)

// BracketError reports an unbalanced bracket. Index is the offending
// instruction index in the instruction stream. Pos is only valid for errors
// returned by Load.
type BracketError struct {
	Kind  BracketKind
	Index int
	Pos   token.Position
}

func (e *BracketError) Error() string {
	var where string
	if e.Pos.IsValid() {
		where = e.Pos.String()
	} else {
		where = "instruction " + strconv.Itoa(e.Index)
	}
	switch e.Kind {
	case ExcessEnd:
		return where + ": unmatched ']'"
	default:
		return where + ": unclosed '['"
	}
}

// Cause returns ErrUnbalanced. It is used by errors.Cause.
func (e *BracketError) Cause() error { return ErrUnbalanced }

// Unwrap returns ErrUnbalanced so that errors.Is works as expected.
func (e *BracketError) Unwrap() error { return ErrUnbalanced }
