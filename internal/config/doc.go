// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional gust user configuration: a CUE file
// validated against an embedded schema and merged through Viper, so CLI
// flags and defaults layer cleanly over file values.
package config
