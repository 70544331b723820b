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

// Package prog turns tape machine source code into a validated instruction
// stream.
//
// The source language has eight instructions, one character each:
//
//	symbol	op	description
//	------	---	-----------------------------------------------------------
//	+	inc	increment the current cell, modulo 256
//	-	dec	decrement the current cell, modulo 256
//	>	right	move the cell pointer one cell to the right
//	<	left	move the cell pointer one cell to the left
//	[	loop	if the current cell is 0, jump past the matching ]
//	]	end	if the current cell is not 0, jump back past the matching [
//	.	out	write the current cell to the output
//	,	in	read one byte from the input into the current cell
//
// Any other character is a comment. Load strips comments, checks that
// brackets are balanced and computes the bracket map once, so that backends
// never see a malformed program and never have to scan for a matching
// bracket at run time.
package prog
