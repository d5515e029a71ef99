// Package event defines the tagged-variant stream produced by walking a
// descriptor set: one value per FileEntered/TypeEntered/FieldEntered/…
// transition, each carrying enough identity to key a projection.
package event

import "github.com/protodata-io/protodata/descriptor"

// Kind discriminates the closed set of event variants, used by the
// projection substrate to route events to interested repositories without
// a type switch at every dispatch site.
type Kind int

const (
	KindFileEntered Kind = iota
	KindFileOptionDiscovered
	KindTypeEntered
	KindTypeOptionDiscovered
	KindFieldEntered
	KindFieldOptionDiscovered
	KindFieldExited
	KindOneofGroupEntered
	KindOneofGroupExited
	KindTypeExited
	KindEnumEntered
	KindEnumConstantDiscovered
	KindEnumExited
	KindServiceEntered
	KindRpcDiscovered
	KindServiceExited
	KindFileExited
)

// Event is implemented by every variant in the stream.
type Event interface {
	Kind() Kind
}

// FieldKey identifies one field by its declaring type and name — stable
// across a run, suitable as a projection key.
type FieldKey struct {
	Type descriptor.TypeName
	Name string
}

type FileEntered struct{ File descriptor.File }

func (FileEntered) Kind() Kind { return KindFileEntered }

type FileOptionDiscovered struct {
	File   string
	Option descriptor.Option
}

func (FileOptionDiscovered) Kind() Kind { return KindFileOptionDiscovered }

type TypeEntered struct{ Type descriptor.MessageType }

func (TypeEntered) Kind() Kind { return KindTypeEntered }

type TypeOptionDiscovered struct {
	Type   descriptor.TypeName
	Option descriptor.Option
}

func (TypeOptionDiscovered) Kind() Kind { return KindTypeOptionDiscovered }

type FieldEntered struct{ Field descriptor.Field }

func (FieldEntered) Kind() Kind { return KindFieldEntered }

type FieldOptionDiscovered struct {
	Field  FieldKey
	Option descriptor.Option
}

func (FieldOptionDiscovered) Kind() Kind { return KindFieldOptionDiscovered }

type FieldExited struct{ Field FieldKey }

func (FieldExited) Kind() Kind { return KindFieldExited }

type OneofGroupEntered struct {
	Type  descriptor.TypeName
	Oneof descriptor.Oneof
}

func (OneofGroupEntered) Kind() Kind { return KindOneofGroupEntered }

type OneofGroupExited struct {
	Type      descriptor.TypeName
	OneofName string
}

func (OneofGroupExited) Kind() Kind { return KindOneofGroupExited }

type TypeExited struct{ Type descriptor.TypeName }

func (TypeExited) Kind() Kind { return KindTypeExited }

type EnumEntered struct{ Enum descriptor.EnumType }

func (EnumEntered) Kind() Kind { return KindEnumEntered }

type EnumConstantDiscovered struct {
	Enum     descriptor.TypeName
	Constant descriptor.EnumConstant
}

func (EnumConstantDiscovered) Kind() Kind { return KindEnumConstantDiscovered }

type EnumExited struct{ Enum descriptor.TypeName }

func (EnumExited) Kind() Kind { return KindEnumExited }

type ServiceEntered struct{ Service descriptor.Service }

func (ServiceEntered) Kind() Kind { return KindServiceEntered }

type RpcDiscovered struct {
	Service descriptor.TypeName
	Rpc     descriptor.Rpc
}

func (RpcDiscovered) Kind() Kind { return KindRpcDiscovered }

type ServiceExited struct{ Service descriptor.TypeName }

func (ServiceExited) Kind() Kind { return KindServiceExited }

type FileExited struct{ Path string }

func (FileExited) Kind() Kind { return KindFileExited }
