// Package screenname derives a member's public screen name from their
// email address.
//
// The rule is deliberately narrow: strip one fixed, configured suffix
// (by default "@gmail.com") from the end of the address. An address with
// any other domain passes through whole, including its "@domain" part.
// That is the contract the rest of the system was built against;
// generalizing the derivation (e.g. taking the local part of arbitrary
// addresses) is an open question, not a fix to be made here.
package screenname

import "strings"

// DefaultSuffix is the suffix stripped when no other is configured.
const DefaultSuffix = "@gmail.com"

// Derive returns the screen name for email by removing suffix from its
// end. If suffix is empty, DefaultSuffix is used. The comparison is
// exact: no case folding, no partial matches.
func Derive(email, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSuffix(email, suffix)
}
