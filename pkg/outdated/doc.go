// Package outdated checks declared dependencies against the registry and
// suggests upgraded specs.
//
// A suggestion keeps the declared range operator and swaps in the latest
// published version, so "^1.0.0" with latest 1.4.0 becomes "^1.4.0". The
// manifest itself is never modified.
package outdated
