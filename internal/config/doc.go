// Package config loads, normalizes, and validates audioconv configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AUDIOCONV_TOOL. A configuration file is optional: when none is found the
// defaults reproduce the plain command-line behaviour (current directory in,
// ./converted out, mp3, sixteen workers).
//
// Always obtain settings through this package so downstream code receives
// absolute paths, a validated target format, and clear validation errors.
package config
