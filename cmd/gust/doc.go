// SPDX-License-Identifier: MPL-2.0

// Package main implements the gust CLI: the default recipe-running
// command plus the introspection subcommands (list, show, dump, summary,
// variables, evaluate, init, edit, completion).
package main
