// Package testutil provides angular.json fixtures and file helpers for tests.
package testutil
