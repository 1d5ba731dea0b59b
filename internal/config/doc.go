// Package config loads extcheck's own settings.
//
// The file is config.yaml, looked up in the current directory and then
// in ~/.config/extcheck/. Every key can be overridden with an
// EXTCHECK_-prefixed environment variable:
//
//	version: 1
//	language: zh-CN   # optional, default: detect from LANG
//	format: json      # text (default), json or yaml
//	no_color: true
//
// The list of required extensions is built into the binary and is not
// a configuration key.
package config
