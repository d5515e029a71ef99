package descriptor

import "google.golang.org/protobuf/types/descriptorpb"

// DocLookup resolves the doc comment attached to the descriptor tree
// element found at path — a sequence of (field-tag, index) pairs from the
// root FileDescriptorProto, matching descriptorpb.SourceCodeInfo_Location's
// own Path encoding.
type DocLookup func(path []int32) Doc

// ConvertFile builds the immutable File header value (path, package,
// syntax, options and doc) from a raw FileDescriptorProto. It does not
// convert the file's messages, enums or services; those are converted by
// ConvertMessageAt/ConvertEnumAt/ConvertServiceAt (or the whole-file
// ConvertMessages/ConvertEnums/ConvertServices).
func ConvertFile(reg *Registry, fd *descriptorpb.FileDescriptorProto, docs DocLookup) (File, error) {
	docs = withDefaultDocs(docs)
	f := File{
		Path:    fd.GetName(),
		Package: fd.GetPackage(),
		Syntax:  fd.GetSyntax(),
		Options: optionsFrom(fd.GetOptions()),
		Doc:     docs(nil),
	}
	return f, nil
}

// ConvertMessages builds the ordered list of top-level message types
// declared directly in fd, following the declaration order the spec
// requires the event stream to reproduce. This resolves every message's
// whole subtree before returning — an eager, whole-file alternative to
// ConvertMessageAt kept for direct testing and tooling that wants the
// complete tree rather than a lazily-produced event stream; the producer
// walks one message at a time via ConvertMessageAt instead, so a
// resolution failure deep in message N never costs the events already
// produced for messages before it.
func ConvertMessages(reg *Registry, fd *descriptorpb.FileDescriptorProto, docs DocLookup) ([]MessageType, error) {
	docs = withDefaultDocs(docs)
	pkg := fd.GetPackage()
	var path []int32
	return convertMessages(reg, pkg, nil, path, fileMessagesTag, fd.GetMessageType(), docs)
}

// ConvertMessageAt converts only the top-level message declared at index i
// in fd, resolving its own subtree (fields, nested types, nested enums)
// without touching any of fd's other top-level messages — the unit of
// laziness the producer advances one at a time.
func ConvertMessageAt(reg *Registry, fd *descriptorpb.FileDescriptorProto, i int, docs DocLookup) (MessageType, error) {
	docs = withDefaultDocs(docs)
	md := fd.GetMessageType()[i]
	path := appendPath(nil, fileMessagesTag, int32(i))
	return convertMessage(reg, fd.GetPackage(), nil, md, path, docs)
}

// ConvertEnums builds the ordered list of top-level enum types. Kept
// alongside ConvertEnumAt for the same whole-file-vs-lazy reason as
// ConvertMessages/ConvertMessageAt; enum conversion itself cannot fail,
// so it is not part of the resolution-ordering fix.
func ConvertEnums(reg *Registry, fd *descriptorpb.FileDescriptorProto, docs DocLookup) ([]EnumType, error) {
	docs = withDefaultDocs(docs)
	pkg := fd.GetPackage()
	return convertEnums(reg, pkg, nil, nil, fileEnumsTag, fd.GetEnumType(), docs), nil
}

// ConvertEnumAt converts only the top-level enum declared at index i in fd.
func ConvertEnumAt(fd *descriptorpb.FileDescriptorProto, i int, docs DocLookup) EnumType {
	docs = withDefaultDocs(docs)
	ed := fd.GetEnumType()[i]
	path := appendPath(nil, fileEnumsTag, int32(i))
	return convertEnum(fd.GetPackage(), nil, ed, path, docs)
}

// ConvertServices builds the ordered list of services declared in fd. Every
// RPC's input and output type is resolved against reg, the same as a
// message field's type — an RPC referencing an unknown type is just as
// fatal a DescriptorResolution failure as a field that does. Kept
// alongside ConvertServiceAt for the same whole-file-vs-lazy reason as
// ConvertMessages/ConvertMessageAt.
func ConvertServices(reg *Registry, fd *descriptorpb.FileDescriptorProto, docs DocLookup) ([]Service, error) {
	docs = withDefaultDocs(docs)
	pkg := fd.GetPackage()
	var out []Service
	for i, sd := range fd.GetService() {
		path := appendPath(nil, fileServicesTag, int32(i))
		svc, err := convertService(reg, pkg, sd, path, docs)
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, nil
}

// ConvertServiceAt converts only the service declared at index i in fd.
func ConvertServiceAt(reg *Registry, fd *descriptorpb.FileDescriptorProto, i int, docs DocLookup) (Service, error) {
	docs = withDefaultDocs(docs)
	sd := fd.GetService()[i]
	path := appendPath(nil, fileServicesTag, int32(i))
	return convertService(reg, fd.GetPackage(), sd, path, docs)
}

func convertMessages(reg *Registry, pkg string, nesting []string, parentPath []int32, tag int32, msgs []*descriptorpb.DescriptorProto, docs DocLookup) ([]MessageType, error) {
	var out []MessageType
	for i, md := range msgs {
		path := appendPath(parentPath, tag, int32(i))
		mt, err := convertMessage(reg, pkg, nesting, md, path, docs)
		if err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, nil
}

func convertMessage(reg *Registry, pkg string, nesting []string, md *descriptorpb.DescriptorProto, path []int32, docs DocLookup) (MessageType, error) {
	name := TypeName{SimpleName: md.GetName(), PackageName: pkg, NestingTypeNames: nesting}
	childNesting := append(append([]string(nil), nesting...), md.GetName())

	mt := MessageType{
		Name:    name,
		Options: optionsFrom(md.GetOptions()),
		Doc:     docs(path),
	}

	oneofIndexName := make([]string, len(md.GetOneofDecl()))
	for i, od := range md.GetOneofDecl() {
		oneofIndexName[i] = od.GetName()
		opath := appendPath(path, messageOneofsTag, int32(i))
		mt.Oneofs = append(mt.Oneofs, Oneof{
			Name:    od.GetName(),
			Options: optionsFrom(od.GetOptions()),
			Doc:     docs(opath),
		})
	}

	for i, fdecl := range md.GetField() {
		oneofName := ""
		if fdecl.OneofIndex != nil {
			idx := fdecl.GetOneofIndex()
			if int(idx) >= 0 && int(idx) < len(oneofIndexName) {
				oneofName = oneofIndexName[idx]
			}
		}
		field, err := FieldFrom(reg, name, fdecl, oneofName)
		if err != nil {
			return MessageType{}, err
		}
		fpath := appendPath(path, messageFieldsTag, int32(i))
		field.Doc = docs(fpath)
		mt.Fields = append(mt.Fields, field)
	}

	nested, err := convertMessages(reg, pkg, childNesting, path, messageNestedTag, nonMapEntryMessages(md.GetNestedType()), docs)
	if err != nil {
		return MessageType{}, err
	}
	mt.NestedTypes = nested
	mt.NestedEnums = convertEnums(reg, pkg, childNesting, path, messageEnumsTag, md.GetEnumType(), docs)

	return mt, nil
}

// nonMapEntryMessages filters out the synthesized per-map-field message
// types descriptorpb generates for every `map<K, V>` field; those are an
// encoding detail resolved away in FieldTypeFrom and never appear as a
// real nested message in the event stream.
func nonMapEntryMessages(msgs []*descriptorpb.DescriptorProto) []*descriptorpb.DescriptorProto {
	out := make([]*descriptorpb.DescriptorProto, 0, len(msgs))
	for _, m := range msgs {
		if m.GetOptions().GetMapEntry() {
			continue
		}
		out = append(out, m)
	}
	return out
}

func convertEnums(reg *Registry, pkg string, nesting []string, parentPath []int32, tag int32, enums []*descriptorpb.EnumDescriptorProto, docs DocLookup) []EnumType {
	var out []EnumType
	for i, ed := range enums {
		path := appendPath(parentPath, tag, int32(i))
		out = append(out, convertEnum(pkg, nesting, ed, path, docs))
	}
	return out
}

func convertEnum(pkg string, nesting []string, ed *descriptorpb.EnumDescriptorProto, path []int32, docs DocLookup) EnumType {
	et := EnumType{
		Name:    TypeName{SimpleName: ed.GetName(), PackageName: pkg, NestingTypeNames: nesting},
		Options: optionsFrom(ed.GetOptions()),
		Doc:     docs(path),
	}
	for i, vd := range ed.GetValue() {
		vpath := appendPath(path, enumValuesTag, int32(i))
		et.Constants = append(et.Constants, EnumConstant{
			Name:    vd.GetName(),
			Number:  vd.GetNumber(),
			Options: optionsFrom(vd.GetOptions()),
			Doc:     docs(vpath),
		})
	}
	return et
}

func convertService(reg *Registry, pkg string, sd *descriptorpb.ServiceDescriptorProto, path []int32, docs DocLookup) (Service, error) {
	svc := Service{
		Name:    TypeName{SimpleName: sd.GetName(), PackageName: pkg},
		Options: optionsFrom(sd.GetOptions()),
		Doc:     docs(path),
	}
	for i, md := range sd.GetMethod() {
		mpath := appendPath(path, serviceMethodsTag, int32(i))
		input, err := resolveRpcType(reg, md.GetInputType())
		if err != nil {
			return Service{}, err
		}
		output, err := resolveRpcType(reg, md.GetOutputType())
		if err != nil {
			return Service{}, err
		}
		svc.Rpcs = append(svc.Rpcs, Rpc{
			Name:            md.GetName(),
			InputType:       input,
			OutputType:      output,
			ClientStreaming: md.GetClientStreaming(),
			ServerStreaming: md.GetServerStreaming(),
			Options:         optionsFrom(md.GetOptions()),
			Doc:             docs(mpath),
		})
	}
	return svc, nil
}

func resolveRpcType(reg *Registry, fqn string) (TypeName, error) {
	if _, ok := reg.messages[fqn]; !ok {
		return TypeName{}, &ResolutionError{TypeName: fqn}
	}
	return reg.names[fqn], nil
}

func withDefaultDocs(docs DocLookup) DocLookup {
	if docs != nil {
		return docs
	}
	return func([]int32) Doc { return Doc{} }
}

func appendPath(parent []int32, tag, index int32) []int32 {
	out := make([]int32, len(parent)+2)
	copy(out, parent)
	out[len(parent)] = tag
	out[len(parent)+1] = index
	return out
}
