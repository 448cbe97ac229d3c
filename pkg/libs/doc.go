// Package libs provides the types, errors, and in-process infrastructure for
// working with the Libs reference-data API: the resource registry with
// multilingual alias resolution, the bounded TTL response cache, the
// per-caller rate limiter, the typed error taxonomy, and the loss-safe
// partial-update merger for term-carrying resources.
//
// A concrete client implementation is provided by the libsclient package,
// which wires configuration, transport, caching, and rate limiting. Most
// consumers should import libsclient to construct a client and interact with
// the Client interface exposed here.
//
// Getting a client
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
//	  ctx := context.Background()
//	  cli, err := libsclient.New(&libs.Config{
//	    BaseURL: "https://libs.example.com/api",
//	    Token:   "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of departments; aliases resolve too, so
//	  // "department", "מחלקה", or "отдел" all reach the same resource.
//	  page, err := cli.List(ctx, "departments", libs.NewListParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Errors
//
// Every failure surfaced by a client is one of three typed errors: APIError
// for upstream or local validation failures, TimeoutError for an expired
// per-call deadline, and RateLimitError for admission rejections. Use
// errors.As or the IsNotFound, IsTimeout, and IsRateLimited helpers for
// programmatic handling.
//
// # Partial updates
//
// Resources in the term-managed set carry an identity-keyed array of
// localized terms. Update merges a partial payload with the resource's
// current representation before sending it upstream, so a caller editing one
// term cannot silently delete its siblings. See MergeForUpdate for the exact
// rules.
package libs
