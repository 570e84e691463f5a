// Package views renders the Jafa pages to a terminal.
//
// Listing views fetch their page when mounted and drop the answer if they
// were unmounted in the meantime. Form views only describe what the shell
// will prompt for; the shell owns the input.
package views
