// Package descriptor defines the immutable value types produced once from
// a protobuf descriptor set: files, messages, enums, services, fields, and
// the option/doc metadata attached to each.
package descriptor

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// TypeName identifies a message or enum type, possibly nested inside other
// types. SimpleName is the bare type name; the names of enclosing types
// are kept in NestingTypeNames. QualifiedName is PackageName, then the
// nesting type names, then SimpleName, joined with ".".
type TypeName struct {
	SimpleName       string
	PackageName      string
	NestingTypeNames []string
	TypeURLPrefix    string
}

// QualifiedName returns the fully qualified protobuf name of this type.
func (n TypeName) QualifiedName() string {
	parts := make([]string, 0, len(n.NestingTypeNames)+1)
	parts = append(parts, n.NestingTypeNames...)
	parts = append(parts, n.SimpleName)
	name := strings.Join(parts, ".")
	if n.PackageName == "" {
		return name
	}
	return n.PackageName + "." + name
}

// Key returns a string suitable for use as a projection map key. It is the
// qualified name; TypeName itself cannot be a map key or an == operand
// because of its slice field.
func (n TypeName) Key() string {
	return n.QualifiedName()
}

// Doc is a resolved doc comment attached to a descriptor element.
type Doc struct {
	LeadingComments  string
	TrailingComments string
}

// Empty reports whether this Doc carries no text at all.
func (d Doc) Empty() bool {
	return d.LeadingComments == "" && d.TrailingComments == ""
}

// Option is a single file/type/field option, as a name/value pair resolved
// from the descriptor's Options proto message.
type Option struct {
	Name  string
	Value string
}

// File is the immutable description of one .proto file entering the
// pipeline.
type File struct {
	Path    string
	Package string
	Syntax  string
	Options []Option
	Doc     Doc
}

// Cardinality mirrors descriptorpb's field label, without the wire-format
// baggage.
type Cardinality int

const (
	CardinalityUnknown Cardinality = iota
	CardinalitySingle
	CardinalityRepeated
	CardinalityRequired // proto2 only
)

func cardinalityFromLabel(label descriptorpb.FieldDescriptorProto_Label) Cardinality {
	switch label {
	case descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
		return CardinalityRepeated
	case descriptorpb.FieldDescriptorProto_LABEL_REQUIRED:
		return CardinalityRequired
	default:
		return CardinalitySingle
	}
}

// FieldTypeKind discriminates the tagged variants of FieldType.
type FieldTypeKind int

const (
	FieldTypeUnknown FieldTypeKind = iota
	FieldTypePrimitive
	FieldTypeMessage
	FieldTypeEnum
	FieldTypeMap
	FieldTypeList
)

// FieldType is the tagged variant { Primitive(kind) | Message(TypeName) |
// Enum(TypeName) | Map(key,value) | List(element) } from the spec's data
// model.
type FieldType struct {
	Kind      FieldTypeKind
	Primitive descriptorpb.FieldDescriptorProto_Type
	TypeName  TypeName   // set when Kind is Message or Enum
	MapKey    *FieldType // set when Kind is Map
	MapValue  *FieldType // set when Kind is Map
	Element   *FieldType // set when Kind is List
}

// Field describes one message field.
type Field struct {
	Name          string
	DeclaringType TypeName
	Number        int32
	Type          FieldType
	Cardinality   Cardinality
	OneofName     string // empty if the field is not part of a oneof
	Options       []Option
	Doc           Doc
}

// Oneof is a named group of mutually exclusive fields.
type Oneof struct {
	Name    string
	Options []Option
	Doc     Doc
}

// MessageType describes one message, including nested types.
type MessageType struct {
	Name         TypeName
	Fields       []Field
	Oneofs       []Oneof
	NestedTypes  []MessageType
	NestedEnums  []EnumType
	Options      []Option
	Doc          Doc
}

// EnumConstant is one named value of an EnumType.
type EnumConstant struct {
	Name    string
	Number  int32
	Options []Option
	Doc     Doc
}

// EnumType describes one enum, including its constants.
type EnumType struct {
	Name      TypeName
	Constants []EnumConstant
	Options   []Option
	Doc       Doc
}

// Rpc describes one method of a Service.
type Rpc struct {
	Name            string
	InputType       TypeName
	OutputType      TypeName
	ClientStreaming bool
	ServerStreaming bool
	Options         []Option
	Doc             Doc
}

// Service describes one RPC service.
type Service struct {
	Name    TypeName
	Rpcs    []Rpc
	Options []Option
	Doc     Doc
}
