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

// Package codegen translates tape machine programs to C source code.
//
// The generated code has the same semantics as the vm package: the tape grows
// to the right on demand, moving left of the first cell aborts the program
// with exit status 1, failing to grow the tape aborts it with exit status 2,
// and input at end of file follows the selected EOF mode.
//
// Compiling the generated code is left to the caller. The bf command runs
// the system C compiler on it.
package codegen
