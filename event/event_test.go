package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/protodata-io/protodata/descriptor"
)

func TestKindMatchesVariant(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want Kind
	}{
		{"FileEntered", FileEntered{}, KindFileEntered},
		{"TypeEntered", TypeEntered{}, KindTypeEntered},
		{"FieldEntered", FieldEntered{}, KindFieldEntered},
		{"OneofGroupEntered", OneofGroupEntered{}, KindOneofGroupEntered},
		{"EnumEntered", EnumEntered{}, KindEnumEntered},
		{"ServiceEntered", ServiceEntered{}, KindServiceEntered},
		{"FileExited", FileExited{}, KindFileExited},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.ev.Kind())
		})
	}
}

// FieldKey embeds TypeName, whose NestingTypeNames slice makes it
// non-comparable — it cannot be a map key or an == operand. cmp.Diff
// compares it structurally via reflection instead.
func TestFieldKeyEquality(t *testing.T) {
	a := FieldKey{Type: descriptor.TypeName{SimpleName: "Widget", NestingTypeNames: []string{"Outer"}}, Name: "id"}
	b := FieldKey{Type: descriptor.TypeName{SimpleName: "Widget", NestingTypeNames: []string{"Outer"}}, Name: "id"}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("FieldKey mismatch (-a +b):\n%s", diff)
	}
	assert.Equal(t, a.Type.Key()+"#"+a.Name, b.Type.Key()+"#"+b.Name)
}
