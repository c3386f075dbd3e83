// SPDX-License-Identifier: MPL-2.0

// Package runtime evaluates and executes compiled justfiles. The Engine
// binds command-line overrides and the process environment, evaluates the
// assignment graph into a flat variable environment, resolves the requested
// recipes and their transitive dependencies into a single execution order,
// and dispatches recipe bodies to a shell backend: the system shell by
// default, or the embedded POSIX interpreter (mvdan/sh) in virtual mode.
//
// Execution is single-threaded and strictly sequential; the evaluated
// environment is built once and handed to the executor immutably. A context
// cancellation terminates the current child process and aborts the rest of
// the run between line and recipe boundaries.
package runtime
