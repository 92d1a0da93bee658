//
// Copyright (c) 2011-2019 Canonical Ltd
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

package yamlgraph

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/willabides/yamlgraph/internal/termcolor"
)

// Option configures a Loader.
type Option func(*Loader)

// ColorMode selects when managed diagnostics are colored.
type ColorMode = termcolor.Mode

const (
	ColorAuto   = termcolor.Auto
	ColorAlways = termcolor.Always
	ColorNever  = termcolor.Never
)

// WithManaged makes the loader write a diagnostic for positional errors
// before returning them. The error is returned either way.
func WithManaged(managed bool) Option {
	return func(l *Loader) {
		l.managed = managed
	}
}

// WithDiagnosticWriter sets where managed diagnostics go. The default is
// os.Stderr.
func WithDiagnosticWriter(w io.Writer) Option {
	return func(l *Loader) {
		l.diagnostics = w
	}
}

// WithColor sets when diagnostics are colored. In ColorAuto the
// process-wide color flag decides.
func WithColor(mode ColorMode) Option {
	return func(l *Loader) {
		l.color = mode
	}
}

// WithConsoleWidth fixes the width diagnostics are cut to. 0 probes the
// diagnostic writer.
func WithConsoleWidth(width int) Option {
	return func(l *Loader) {
		l.width = width
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithPersistentDirectives keeps %YAML and %TAG directives in effect for
// every following document instead of only the next one.
func WithPersistentDirectives(persist bool) Option {
	return func(l *Loader) {
		l.persistDirectives = persist
	}
}

// WithMaxDepth bounds how deeply collections may nest. Values below 1
// select the default of 10000.
func WithMaxDepth(depth int) Option {
	return func(l *Loader) {
		l.maxDepth = depth
	}
}
