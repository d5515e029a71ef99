package pipeline

import "github.com/protodata-io/protodata/projection"

// Plugin registers zero or more projection repositories on a fresh
// Builder. Plugins are stateless between pipeline runs; FillIn may be
// called once per Run.
type Plugin interface {
	FillIn(b *projection.Builder)
}
