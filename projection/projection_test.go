package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protodata-io/protodata/descriptor"
	"github.com/protodata-io/protodata/event"
)

type typeCount struct {
	name   string
	fields int
}

func countingRepository() Repository[typeCount] {
	return Repository[typeCount]{
		New: func() typeCount { return typeCount{} },
		Routes: map[event.Kind]func(event.Event) (string, bool){
			event.KindTypeEntered: func(ev event.Event) (string, bool) {
				return ev.(event.TypeEntered).Type.Name.Key(), true
			},
			event.KindFieldEntered: func(ev event.Event) (string, bool) {
				return ev.(event.FieldEntered).Field.DeclaringType.Key(), true
			},
		},
		Apply: func(state typeCount, ev event.Event) typeCount {
			switch e := ev.(type) {
			case event.TypeEntered:
				state.name = e.Type.Name.SimpleName
			case event.FieldEntered:
				state.fields++
			}
			return state
		},
	}
}

func eventsForOneType() []event.Event {
	widget := descriptor.TypeName{SimpleName: "Widget"}
	return []event.Event{
		event.FileEntered{},
		event.TypeEntered{Type: descriptor.MessageType{Name: widget}},
		event.FieldEntered{Field: descriptor.Field{Name: "id", DeclaringType: widget}},
		event.FieldExited{Field: event.FieldKey{Type: widget, Name: "id"}},
		event.FieldEntered{Field: descriptor.Field{Name: "label", DeclaringType: widget}},
		event.FieldExited{Field: event.FieldKey{Type: widget, Name: "label"}},
		event.TypeExited{Type: widget},
		event.FileExited{},
	}
}

func seqOf(events []event.Event) func(func(event.Event) bool) {
	return func(yield func(event.Event) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestDrainAccumulatesPerKeyState(t *testing.T) {
	b := &Builder{}
	Register(b, "types", countingRepository())

	ctx := b.Drain(seqOf(eventsForOneType()))

	results := Query[typeCount](ctx, "types", nil)
	require.Len(t, results, 1)
	assert.Equal(t, "Widget", results[0].name)
	assert.Equal(t, 2, results[0].fields)
}

func TestQueryWithPredicateFilters(t *testing.T) {
	b := &Builder{}
	Register(b, "types", countingRepository())
	ctx := b.Drain(seqOf(eventsForOneType()))

	none := Query[typeCount](ctx, "types", func(tc typeCount) bool { return tc.fields > 10 })
	assert.Empty(t, none)

	match := Select[typeCount](ctx, "types").Where(func(tc typeCount) bool { return tc.name == "Widget" }).Results()
	require.Len(t, match, 1)
}

func TestQueryOnUnknownRepositoryIsEmpty(t *testing.T) {
	b := &Builder{}
	ctx := b.Drain(seqOf(nil))
	assert.Empty(t, Query[typeCount](ctx, "missing", nil))
}

func TestDrainDispatchesToMultipleRepositoriesInRegistrationOrder(t *testing.T) {
	var order []string
	b := &Builder{}
	Register(b, "first", Repository[int]{
		New: func() int { return 0 },
		Routes: map[event.Kind]func(event.Event) (string, bool){
			event.KindFileEntered: func(event.Event) (string, bool) { return "k", true },
		},
		Apply: func(s int, _ event.Event) int { order = append(order, "first"); return s },
	})
	Register(b, "second", Repository[int]{
		New: func() int { return 0 },
		Routes: map[event.Kind]func(event.Event) (string, bool){
			event.KindFileEntered: func(event.Event) (string, bool) { return "k", true },
		},
		Apply: func(s int, _ event.Event) int { order = append(order, "second"); return s },
	})

	b.Drain(seqOf([]event.Event{event.FileEntered{}}))
	assert.Equal(t, []string{"first", "second"}, order)
}
