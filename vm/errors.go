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

package vm

import (
	"fmt"
	"go/token"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Run errors. Use errors.Cause (or errors.Is) on errors returned by Run to
// check for these.
var (
	// ErrTapeUnderflow is returned when moving left of the first cell.
	ErrTapeUnderflow = errors.New("tape underflow")
	// ErrOutOfMemory is returned when the tape cannot grow any further.
	ErrOutOfMemory = errors.New("out of memory")
)

// Error is the error type returned by Run. It records the machine state at
// the point of failure.
type Error struct {
	Err error          // underlying error
	PC  int            // index of the failing instruction
	Ptr int            // cell pointer
	Pos token.Position // source position of the failing instruction
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%v (pc=%d, ptr=%d)", e.Err, e.PC, e.Ptr)
	return b.String()
}

// Cause returns the underlying error.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Format implements fmt.Formatter. With the %+v verb, the stack trace of the
// underlying error is printed as well.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.Pos.IsValid() {
				fmt.Fprintf(s, "%s: ", e.Pos)
			}
			fmt.Fprintf(s, "%+v\npc=%d, ptr=%d", e.Err, e.PC, e.Ptr)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (i *Instance) fail(err error) error {
	return &Error{
		Err: err,
		PC:  i.PC,
		Ptr: i.Ptr,
		Pos: i.prog.Position(i.PC),
	}
}

// EOFMode selects what the input instruction stores in the current cell once
// the input is exhausted.
type EOFMode int

// Supported EOF modes.
const (
	EOFUnchanged EOFMode = iota // leave the cell unchanged
	EOFZero                     // store 0
	EOFMinusOne                 // store 255 (-1)
)

var eofModes = [...]string{"unchanged", "zero", "255"}

func (m EOFMode) String() string {
	if m >= 0 && int(m) < len(eofModes) {
		return eofModes[m]
	}
	return fmt.Sprintf("EOFMode(%d)", int(m))
}

// ParseEOFMode parses the String representation of an EOFMode. "0" and "-1"
// are accepted as aliases for "zero" and "255".
func ParseEOFMode(s string) (EOFMode, error) {
	switch strings.ToLower(s) {
	case "unchanged", "":
		return EOFUnchanged, nil
	case "zero", "0":
		return EOFZero, nil
	case "255", "-1":
		return EOFMinusOne, nil
	}
	return 0, errors.Errorf("unknown EOF mode %q", s)
}

// Set implements flag.Value.
func (m *EOFMode) Set(s string) error {
	v, err := ParseEOFMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
