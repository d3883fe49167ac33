// Package main provides the entry point of go-mail-composer.
// It serves a JSON API around the email composer settings document,
// email list validation and html sanitization, and exposes the same
// operations as cobra sub commands.
package main
