// Package views holds the server-rendered HTML pages.
package views

//go:generate templ generate
