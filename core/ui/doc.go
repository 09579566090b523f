// Package ui provides semantic text formatting for the sync report.
//
// Formatters colorize when the terminal supports it. When NO_COLOR is set
// or the output is not a terminal, plain text with light decorations is
// produced instead (keys in 'quotes', secondary text in parentheses).
package ui
