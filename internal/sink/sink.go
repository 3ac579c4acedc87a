// Package sink delivers accepted records to their destination.
package sink

// Sink receives the fields of accepted records in row order.
type Sink interface {
	// Write stores one record. fields is owned by the sink after the call.
	Write(row int, fields []string) error
	// Close flushes and releases the sink.
	Close() error
}
