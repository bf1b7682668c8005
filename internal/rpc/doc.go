// Package rpc carries diagnostic queries between the analysis host and a
// querying process over a well-known Unix socket.
//
// The protocol is deliberately small: a client sends one request frame and
// the next response frame on that connection answers it. There are no
// request ids; correlation relies on each client keeping at most one call
// in flight, which Client enforces. Failures travel as a reason string
// inside the response frame; the channel has no separate error frame.
package rpc
