// Package main provides the entry point for the mailsift CLI.
//
// Mailsift harvests publicly listed contact email addresses from a
// single website, staying on the site's own domain and stopping as soon
// as its page or email budget is reached.
//
// Usage:
//
//	mailsift harvest <url>
//	mailsift serve --listen :8080
//
// See --help for all available options.
package main

// main is the entry point for mailsift.
func main() {
	Execute()
}
