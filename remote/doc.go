// Package remote defines the surfaces this kit consumes from the underlying
// RPC runtime: remote references, the duplex connection with its inbound
// message pump, the sync/async dispatch primitives, and the pending-result
// handle for in-flight asynchronous calls.
//
// None of these are implemented here. The protocol, framing and transport
// layers live outside this module; remote only fixes their contracts so that
// proxy, buffiter and bgserve can be written (and tested) against them.
// The remotetest package provides in-process implementations for tests.
package remote
