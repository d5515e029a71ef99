package descriptor

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// optionsFrom extracts a deterministic []Option from any options proto
// message (*descriptorpb.FileOptions, *descriptorpb.MessageOptions, …).
// Message.Range visits populated fields in an unspecified order, so the
// result is sorted by field number to keep pipeline output deterministic
// (see the determinism requirement on repeated runs over the same input).
// Extension (custom) options whose types are registered are visited like
// known fields; options left as unrecognized bytes are not included.
func optionsFrom(msg proto.Message) []Option {
	if msg == nil {
		return nil
	}
	refl := msg.ProtoReflect()
	if !refl.IsValid() {
		return nil
	}

	type numbered struct {
		num int32
		opt Option
	}
	var opts []numbered
	refl.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		opts = append(opts, numbered{
			num: int32(fd.Number()),
			opt: Option{
				Name:  string(fd.Name()),
				Value: formatOptionValue(v),
			},
		})
		return true
	})
	sort.Slice(opts, func(i, j int) bool { return opts[i].num < opts[j].num })

	out := make([]Option, len(opts))
	for i, o := range opts {
		out[i] = o.opt
	}
	return out
}

func formatOptionValue(v protoreflect.Value) string {
	return fmt.Sprint(v.Interface())
}
