// Package econ provides types, interfaces, and helpers for working with the
// economy-tracking REST API (shops, players, items, prices, change logs).
//
// # Overview
//
// The econ package defines the wire contracts (Envelope, Meta, RateLimit),
// the typed errors returned by the request pipeline (Error, TransportError),
// the domain types (Shop, Player, Item, Price, ChangeLogEntry, ...) and the
// interfaces of the resource clients. A concrete implementation is provided
// by the econclient package, which wires configuration, transport, retries
// and authentication. Most consumers import econclient to construct a client
// and then use the interfaces declared here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/econ-client/pkg/econ"
//	  "github.com/fivetwenty-io/econ-client/pkg/econclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := econclient.New(ctx, &econ.Config{APIKey: "key"})
//	  if err != nil { log.Fatal(err) }
//
//	  shops, err := cli.Shops().List(ctx, &econ.ListOptions{Limit: 50})
//	  if err != nil { log.Fatal(err) }
//	  _ = shops
//	}
//
// # Raw requests
//
// Every resource method is a thin wrapper over Executor.Execute, which
// returns the undecoded success envelope. ExecuteAs decodes the data block
// into a caller supplied type:
//
//	env, err := econ.ExecuteAs[[]econ.Shop](ctx, cli, "/v1/shops",
//	  &econ.RequestOptions{Params: econ.NewParams().Add("search", "diamond")})
//
// # Errors
//
// Non-2xx responses surface as *Error carrying the API error code, HTTP
// status and request id. Failures without any HTTP response (timeouts,
// refused connections) surface as *TransportError. Helpers such as
// IsNotFound and IsRateLimited, or errors.Is against ErrNotFound and
// ErrRateLimited, make it easy to branch on common cases.
//
// # Rate limits
//
// The client records the X-RateLimit-* headers of every response. The most
// recent snapshot is available from Client.LastRateLimit. Concurrent calls
// overwrite it in completion order; no merging is attempted.
//
// # Interceptors and caching
//
// Request/response interceptors (logging, headers, metrics, client-side
// throttling) and a pluggable Cache (memory, NATS JetStream key-value,
// chained) can be attached through Config.
package econ
