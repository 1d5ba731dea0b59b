// Package report renders extension check results as localized text, JSON
// or YAML, and builds the install commands users can copy.
package report
