package remote

import (
	_ "embed"
)

// clientHTML is the touch remote served for every path the router does not
// recognize, including /. The page implements the wire contract the server
// counts on: a 1-second status poll with no backoff and a debounced
// touch-scroll accumulator that sends at most one /scroll request per 50 ms.
//
//go:embed assets/remote.html
var clientHTML []byte
