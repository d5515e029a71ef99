package descriptor

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Registry resolves qualified type names to their declaring descriptor
// proto across every file in a descriptor set — including files that are
// not in files_to_generate, per the spec's rule that imported-but-not-
// generated files remain available for resolving field type references.
// Alongside each proto it keeps the TypeName that type's own declaration
// site would build (real package plus the true nesting chain), so a
// *reference* to the type (a field's TypeName, an RPC's input/output type)
// gets the identical split a TypeEntered/EnumEntered event for that same
// type carries — QualifiedName agrees either way, but the package/nesting
// split does not unless it is looked up, not guessed from the dotted string.
type Registry struct {
	messages map[string]*descriptorpb.DescriptorProto
	enums    map[string]*descriptorpb.EnumDescriptorProto
	names    map[string]TypeName
}

// NewRegistry indexes every message and enum type declared in files.
func NewRegistry(files []*descriptorpb.FileDescriptorProto) *Registry {
	r := &Registry{
		messages: make(map[string]*descriptorpb.DescriptorProto),
		enums:    make(map[string]*descriptorpb.EnumDescriptorProto),
		names:    make(map[string]TypeName),
	}
	for _, f := range files {
		pkg := f.GetPackage()
		prefix := pkg
		if prefix != "" {
			prefix = "." + prefix
		}
		r.indexMessages(prefix, pkg, nil, f.GetMessageType())
		r.indexEnums(prefix, pkg, nil, f.GetEnumType())
	}
	return r
}

func (r *Registry) indexMessages(fqnPrefix, pkg string, nesting []string, msgs []*descriptorpb.DescriptorProto) {
	for _, m := range msgs {
		fqn := fqnPrefix + "." + m.GetName()
		r.messages[fqn] = m
		r.names[fqn] = TypeName{SimpleName: m.GetName(), PackageName: pkg, NestingTypeNames: nesting}
		childNesting := append(append([]string(nil), nesting...), m.GetName())
		r.indexMessages(fqn, pkg, childNesting, m.GetNestedType())
		r.indexEnums(fqn, pkg, childNesting, m.GetEnumType())
	}
}

func (r *Registry) indexEnums(fqnPrefix, pkg string, nesting []string, enums []*descriptorpb.EnumDescriptorProto) {
	for _, e := range enums {
		fqn := fqnPrefix + "." + e.GetName()
		r.enums[fqn] = e
		r.names[fqn] = TypeName{SimpleName: e.GetName(), PackageName: pkg, NestingTypeNames: nesting}
	}
}

// ResolutionError reports a field or RPC whose declared type could not be
// found in the registry — a fatal condition per the spec's DescriptorResolution
// error kind.
type ResolutionError struct {
	TypeName string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("descriptor: cannot resolve type %q", e.TypeName)
}

// FieldTypeFrom resolves a FieldDescriptorProto into our FieldType variant.
// A repeated message field whose target is a synthesized map-entry message
// (Options.MapEntry set) becomes Map(key, value) instead of a List of
// Message — matching descriptorpb's own encoding of the map built-in type.
func FieldTypeFrom(reg *Registry, fd *descriptorpb.FieldDescriptorProto) (FieldType, error) {
	base, err := scalarFieldTypeFrom(reg, fd)
	if err != nil {
		return FieldType{}, err
	}

	if base.Kind == FieldTypeMessage {
		if entry, ok := reg.messages[fd.GetTypeName()]; ok && entry.GetOptions().GetMapEntry() {
			keyFd, valueFd, ok := MapEntryFields(entry)
			if !ok {
				return FieldType{}, fmt.Errorf("descriptor: malformed map entry for %s", fd.GetTypeName())
			}
			keyType, err := scalarFieldTypeFrom(reg, keyFd)
			if err != nil {
				return FieldType{}, err
			}
			valueType, err := FieldTypeFrom(reg, valueFd)
			if err != nil {
				return FieldType{}, err
			}
			return FieldType{Kind: FieldTypeMap, MapKey: &keyType, MapValue: &valueType}, nil
		}
	}

	if fd.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
		elem := base
		return FieldType{Kind: FieldTypeList, Element: &elem}, nil
	}
	return base, nil
}

// scalarFieldTypeFrom resolves the element type of fd, ignoring
// cardinality/map-ness — used both for top-level fields and for resolving
// a map entry's key/value sub-fields.
func scalarFieldTypeFrom(reg *Registry, fd *descriptorpb.FieldDescriptorProto) (FieldType, error) {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		fqn := fd.GetTypeName()
		if _, ok := reg.messages[fqn]; !ok {
			return FieldType{}, &ResolutionError{TypeName: fqn}
		}
		return FieldType{Kind: FieldTypeMessage, TypeName: reg.names[fqn]}, nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		fqn := fd.GetTypeName()
		if _, ok := reg.enums[fqn]; !ok {
			return FieldType{}, &ResolutionError{TypeName: fqn}
		}
		return FieldType{Kind: FieldTypeEnum, TypeName: reg.names[fqn]}, nil
	default:
		return FieldType{Kind: FieldTypePrimitive, Primitive: fd.GetType()}, nil
	}
}

// MapEntryFields returns the key and value FieldDescriptorProtos of a
// synthesized map-entry message, and whether both were found.
func MapEntryFields(mapEntry *descriptorpb.DescriptorProto) (key, value *descriptorpb.FieldDescriptorProto, ok bool) {
	if mapEntry == nil {
		return nil, nil, false
	}
	for _, f := range mapEntry.GetField() {
		switch f.GetName() {
		case "key":
			key = f
		case "value":
			value = f
		}
	}
	return key, value, key != nil && value != nil
}

// FieldFrom converts one field. declaring is the TypeName of the message
// the field belongs to; oneofName is empty unless the field is part of a
// oneof group.
func FieldFrom(reg *Registry, declaring TypeName, fd *descriptorpb.FieldDescriptorProto, oneofName string) (Field, error) {
	ft, err := FieldTypeFrom(reg, fd)
	if err != nil {
		return Field{}, err
	}
	return Field{
		Name:          fd.GetName(),
		DeclaringType: declaring,
		Number:        fd.GetNumber(),
		Type:          ft,
		Cardinality:   cardinalityFromLabel(fd.GetLabel()),
		OneofName:     oneofName,
		Options:       optionsFrom(fd.GetOptions()),
	}, nil
}
