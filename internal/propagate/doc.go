// Package propagate copies a package's built files into the node_modules
// of its dependents.
//
// A dependent is a directory whose immediate subdirectories are consumer
// projects ("targets"). For every selected target and every file matched
// by the copy-config globs, the file at <workspace>/<file> is copied to
// <target>/node_modules/<package name segments>/<file>.
//
// Destination directories are never created: if one is missing the whole
// operation fails before the first copy.
package propagate
