// Package main provides the entry point for the zatsuon CLI.
//
// zatsuon generates decoy HTTP browsing traffic: it fetches configured
// seed pages and wanders their hyperlinks at random, so an observer of
// the network cannot tell genuine browsing from noise.
//
// Usage:
//
//	zatsuon init
//	zatsuon run --timeout 1h
//
// See --help for all available options.
package main

// main is the entry point for zatsuon.
func main() {
	Execute()
}
