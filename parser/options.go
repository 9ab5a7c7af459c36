// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

// Option configures a Parse call, following the functional-options
// shape used elsewhere in the retrieved pack for language front ends.
type Option func(*options)

type options struct {
	filename string

	// recoveryDisabled documents the historical option shape; recovery
	// is unconditionally disabled (spec §7 — the first Error aborts the
	// parse), so this field is read nowhere. It exists so a caller
	// migrating from a parser that supported recovery can still compile
	// against this API without the option silently vanishing.
	recoveryDisabled bool
}

// WithFilename attributes every span in the resulting tree to name
// instead of the path Parse was called with.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithRecoveryDisabled is a no-op: this parser never attempts error
// recovery, so there is nothing to disable. Kept only so the option
// name survives for callers ported from a recovering parser.
func WithRecoveryDisabled() Option {
	return func(o *options) {
		o.recoveryDisabled = true
	}
}
