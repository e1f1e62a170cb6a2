// Package provider implements remote dictionary backends.
package provider

import "github.com/ZaguanLabs/wortlex"

// Provider is the interface for remote dictionary backends.
// This is an alias to the main package interface for convenience.
type Provider = wortlex.Provider

// LookupQuery is an alias to the main package type.
type LookupQuery = wortlex.LookupQuery
