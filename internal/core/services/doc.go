// Package services holds the application logic: ingredient list analysis,
// catalog lookups, affiliate offers, suggestions, health and settings. Each
// service implements a driving port and talks to storage only through
// driven ports.
package services
