// Package workspace locates and loads the Angular workspace configuration
// under a root directory. It provides the Context type that holds the
// resolved paths and the parsed document for the rest of the command.
package workspace
