// Package nav implements the site navigation: the mobile menu toggle and
// in-page anchor links that scroll to their target section.
package nav
