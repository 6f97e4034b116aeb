// Package bgserve runs a background serving worker for one connection.
//
// Asynchronous replies only arrive if something pumps the connection's
// inbound queue. When no foreground call is blocked in a receive, a Worker
// does it: a dedicated goroutine repeatedly asks the connection to serve
// whatever traffic is pending, then sleeps briefly to avoid starving other
// goroutines contending for the connection.
//
// A worker is single-use: it starts serving at construction and stopping is
// terminal. Stop returns only after the goroutine has fully exited, so no
// pump call can touch the connection afterwards. A connection must be pumped
// by at most one serving loop at a time — running a second one concurrently,
// foreground or background, races on the connection's buffers.
//
// Pump failures stop the worker exactly once. With a failure handler
// installed the handler is invoked with the error; without one the worker
// goroutine panics. Background failures are otherwise silent: register a
// handler if you need to observe them.
package bgserve
