// Package config holds mailsift's configuration: crawl budgets, fetch
// limits, and the fast-mode seed path table.
//
// Configuration flows from CLI flags (or API request fields) into a
// Config struct and is passed through the application by dependency
// injection; there is no global state. Out-of-range budgets are clamped
// into their safe ranges rather than rejected, so a caller asking for
// 10,000 pages simply gets the maximum.
//
// The fast-mode seed list is data, not logic: it can be overridden from a
// YAML file (.mailsift) searched in the current directory, the home
// directory, and the XDG config directory.
package config
