package order

// Source records which creation path produced an order.
type Source string

const (
	// SourcePrimary orders were created by the order persistence function.
	SourcePrimary Source = "primary"

	// SourceFallback orders were inserted locally after the primary path
	// failed post-charge.
	SourceFallback Source = "fallback"
)
