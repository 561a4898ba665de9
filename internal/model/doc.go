// Package model defines the data structures shared across mailsift's
// packages: the crawl result and its JSON representation.
package model
