package renderlang

import (
	"github.com/protodata-io/protodata/event"
	"github.com/protodata-io/protodata/projection"
)

// TypeNamesRepository is the query name TypeNamesPlugin registers.
const TypeNamesRepository = "typeNames"

// TypeNamesPlugin is the minimal projection a renderer needs to key work
// off which message types were seen: it records every TypeEntered
// event's simple name, queryable afterward as a []string.
type TypeNamesPlugin struct{}

func (TypeNamesPlugin) FillIn(b *projection.Builder) {
	projection.Register(b, TypeNamesRepository, projection.Repository[string]{
		New: func() string { return "" },
		Routes: map[event.Kind]func(event.Event) (string, bool){
			event.KindTypeEntered: func(ev event.Event) (string, bool) {
				te := ev.(event.TypeEntered)
				return te.Type.Name.Key(), true
			},
		},
		Apply: func(_ string, ev event.Event) string {
			return ev.(event.TypeEntered).Type.Name.SimpleName
		},
	})
}
