// Package generator turns a memory note into a blog post with one call to the
// Anthropic Messages API.
//
// Flow:
//
//	resolve credential -> build client -> user(prompt) -> assistant(text)
//
// The client is built only after a credential resolves, so a missing key never
// touches the network.
package generator
