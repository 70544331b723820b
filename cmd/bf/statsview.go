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

//go:build statsview

package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const statsViewAvailable = true

const statsViewAddr = "localhost:12600"

// launchStatsView starts the runtime statistics web server in the background.
func launchStatsView(w io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(statsViewAddr))
	mgr := statsview.New()
	go mgr.Start()
	fmt.Fprintf(w, "stats server available at %s/debug/statsview\n", statsViewAddr)
}
