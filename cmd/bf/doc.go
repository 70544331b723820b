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

/*
Command bf runs or compiles tape machine programs.

Usage:

	bf [options] program.b

The program file is read, checked for balanced brackets, and then either run
by the interpreter or translated to C. A program file name of - reads the
program from stdin.

Running a program:

	bf hello.b
	bf -with input.txt -eof zero rot13.b

Input is read from the files given with -with, in order, then from stdin.
When stdin is a terminal, it is switched to character mode so that programs
see each key as it is typed. Press CTRL-D to signal end of file. Use -noraw
to keep line buffered input.

Compiling a program:

	bf -c hello.c hello.b
	bf -o hello -cc clang -cflags "-O2 -g" hello.b

The generated program behaves like the interpreter with the same -size,
-maxsize and -eof settings. Moving left of the first cell exits with status 1
and running out of tape exits with status 2.

Settings can also be loaded from a CUE file with -config. Command line flags
take precedence over the file. Example:

	size:    1000
	maxsize: 0
	eof:     "zero"
	cc:      "clang"
	cflags:  ["-O2"]
	logLevel: "info"

Other options:

	-list       print a listing of the program and exit
	-dump       print the machine state upon exit
	-memviz     write a graphviz view of the machine state upon exit
	-debug      print stack traces of errors and the machine state
	-log-level  one of debug, info, warn or error
	-log-file   append JSON formatted logs to the given file
	-journal    also send logs to the systemd journal
	-statsview  serve runtime statistics at localhost:12600 (requires the
	            statsview build tag)
*/
package main
