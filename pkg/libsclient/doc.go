// Package libsclient provides the primary entry point for constructing a
// Libs reference-data API client that implements the libs.Client interface.
//
// It layers configuration, HTTP transport, response caching, and per-caller
// rate limiting on top of the types and registry defined in the libs
// package. Most applications should import libsclient to build a client,
// then use the returned libs.Client for the generic resource operations:
// List, Get, Create, Update, Delete, and FindTerms.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/libshub/libs-client/pkg/libs"
//	  "github.com/libshub/libs-client/pkg/libsclient"
//	)
//
//	func example() {
//	  cli, err := libsclient.New(&libs.Config{
//	    BaseURL: "https://libs.example.com/api",
//	    Token:   "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.List(context.Background(), "professions",
//	    libs.NewListParams().WithSearch("engineer"))
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
package libsclient
