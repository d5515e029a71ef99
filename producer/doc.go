package producer

import (
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protodata-io/protodata/descriptor"
)

// buildDocLookup indexes a file's SourceCodeInfo by path, so that each
// descriptor tree node built from the same FileDescriptorProto can resolve
// its own leading/trailing comments in O(1).
func buildDocLookup(fd *descriptorpb.FileDescriptorProto) descriptor.DocLookup {
	info := fd.GetSourceCodeInfo()
	if info == nil || len(info.GetLocation()) == 0 {
		return func([]int32) descriptor.Doc { return descriptor.Doc{} }
	}

	byPath := make(map[string]descriptor.Doc, len(info.GetLocation()))
	for _, loc := range info.GetLocation() {
		leading := loc.GetLeadingComments()
		trailing := loc.GetTrailingComments()
		if leading == "" && trailing == "" {
			continue
		}
		byPath[pathKey(loc.GetPath())] = descriptor.Doc{
			LeadingComments:  leading,
			TrailingComments: trailing,
		}
	}

	return func(path []int32) descriptor.Doc {
		return byPath[pathKey(path)]
	}
}

// pathKey renders a SourceCodeInfo path as a comma-joined string, matching
// the path encoding descriptorpb itself uses to address a tree node.
func pathKey(path []int32) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}
