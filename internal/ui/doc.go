// Package ui renders console output for ngxenv commands.
package ui
