// Package angular reads and rewrites Angular workspace configuration files
// (angular.json). Documents are edited in place so that formatting-neutral
// round trips keep every unrelated option and the original key order.
package angular
