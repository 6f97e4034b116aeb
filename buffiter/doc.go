// Package buffiter iterates over remote sequences in batches.
//
// Fetching one element per round trip makes tight loops latency-bound. A
// buffered iterator instead requests a chunk of elements at a time, growing
// the chunk geometrically (chunk, chunk*factor, ... up to max_chunk) so
// throughput improves as the loop proves it wants more data. Elements of a
// fetched batch are yielded in order before the next batch is requested;
// there is never more than one fetch in flight. An empty batch ends the
// sequence.
//
// The iterator is forward-only and single-pass, shaped like a pull-based
// pipeline stage: Next(ctx) returns (value, ok, error) and Close releases
// the remaining buffer.
package buffiter
