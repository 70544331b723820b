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

import "github.com/pkg/errors"

// Tape encapsulates a machine's memory cells.
type Tape []Cell

// nextSize returns the size of a tape of n cells after growth.
func nextSize(n int) int {
	return n*6/5 + 512
}

// grow extends the tape to at least min cells, never beyond max cells.
// The contents of existing cells are preserved.
func (t *Tape) grow(min, max int) (err error) {
	n := len(*t)
	if min <= n {
		return nil
	}
	if min > max {
		return errors.Wrapf(ErrOutOfMemory, "tape size limit of %d cells reached", max)
	}
	size := nextSize(n)
	if size < min || size < n {
		size = min
	}
	if size > max {
		size = max
	}
	defer func() {
		if e := recover(); e != nil {
			err = errors.Wrapf(ErrOutOfMemory, "cannot grow tape to %d cells: %v", size, e)
		}
	}()
	nt := make(Tape, size)
	copy(nt, *t)
	*t = nt
	return nil
}
