// Package main provides the entry point for the rivalscan CLI.
//
// rivalscan submits a primary website and its competitors to a
// competitive analysis server, follows the job until it finishes and
// prints where the results can be viewed.
//
// Usage:
//
//	rivalscan analyze <primary-url> [competitor-url...]
//	rivalscan status <session-id>...
//
// See --help for all available options.
package main

// main is the entry point for rivalscan.
func main() {
	Execute()
}
