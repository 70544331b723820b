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

// Package vm implements the tape machine that runs programs loaded with the
// prog package.
//
// The machine has a tape of 8 bits cells, a cell pointer and a program
// counter. The tape starts with TapeSize zeroed cells (DefaultTapeSize by
// default) and grows to the right as needed, up to MaxTapeSize cells. Moving
// left of the first cell stops the machine with ErrTapeUnderflow, and failing
// to grow the tape stops it with ErrOutOfMemory. Cell arithmetic wraps around
// modulo 256.
//
// Loops are resolved through the program's precomputed bracket map, so a
// jump costs the same regardless of the distance to the matching bracket.
//
// Input is consumed lazily, one byte per input instruction. What happens when
// the input is exhausted is selected with the OnEOF option; the default is to
// leave the current cell unchanged.
//
// An Instance is not safe for concurrent use, but the *prog.Program it runs
// is read-only, so any number of instances can run the same program
// concurrently.
package vm
