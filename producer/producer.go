// Package producer walks a CodeGeneratorRequest's requested files and
// yields the event.Event stream the projection substrate consumes. Each
// top-level message, enum, and service is resolved from its raw
// descriptorpb proto and emitted in the same step, one at a time — so
// advancing the stream past a resolution failure never requires resolving
// anything the consumer hasn't reached yet, and a file whose Nth message
// fails to resolve still yields every event for messages 1..N-1 before
// the stream ends.
package producer

import (
	"io"
	"iter"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protodata-io/protodata/descriptor"
	"github.com/protodata-io/protodata/event"
)

// Producer tracks the first error encountered while building the
// descriptor tree for a requested file. Once set, the event sequence it
// backs stops yielding further events.
type Producer struct {
	err error
}

// Err returns the first resolution or conversion error encountered while
// producing events, or nil if the request was fully consumed.
func (p *Producer) Err() error {
	return p.err
}

// Produce returns the lazy event stream for every file named in
// req.FileToGenerate, plus the Producer tracking its error state. The
// returned sequence must be drained (e.g. with range) for Producer.Err to
// reflect a definitive result; stopping early leaves Err as whatever was
// observed up to that point.
func Produce(req *pluginpb.CodeGeneratorRequest) (iter.Seq[event.Event], *Producer) {
	p := &Producer{}
	reg := descriptor.NewRegistry(req.GetProtoFile())

	wanted := make(map[string]bool, len(req.GetFileToGenerate()))
	for _, name := range req.GetFileToGenerate() {
		wanted[name] = true
	}

	seq := func(yield func(event.Event) bool) {
		for _, fd := range req.GetProtoFile() {
			if !wanted[fd.GetName()] {
				continue
			}
			if !p.emitFile(reg, fd, yield) {
				return
			}
		}
	}
	return seq, p
}

// emitFile resolves and emits one file's content in file-declaration
// order: the file header, then each top-level message, then each enum,
// then each service — converting one element at a time, right before
// emitting it, rather than building the whole file's tree up front. A
// resolution failure on element N aborts the stream after elements
// 1..N-1's events have already reached the consumer.
func (p *Producer) emitFile(reg *descriptor.Registry, fd *descriptorpb.FileDescriptorProto, yield func(event.Event) bool) bool {
	docs := buildDocLookup(fd)

	file, err := descriptor.ConvertFile(reg, fd, docs)
	if err != nil {
		p.fail(fd.GetName(), err)
		return false
	}
	if !yield(event.FileEntered{File: file}) {
		return false
	}
	for _, opt := range file.Options {
		if !yield(event.FileOptionDiscovered{File: file.Path, Option: opt}) {
			return false
		}
	}

	for i := range fd.GetMessageType() {
		mt, err := descriptor.ConvertMessageAt(reg, fd, i, docs)
		if err != nil {
			p.fail(fd.GetName(), err)
			return false
		}
		if !emitMessage(mt, yield) {
			return false
		}
	}
	for i := range fd.GetEnumType() {
		et := descriptor.ConvertEnumAt(fd, i, docs)
		if !emitEnum(et, yield) {
			return false
		}
	}
	for i := range fd.GetService() {
		svc, err := descriptor.ConvertServiceAt(reg, fd, i, docs)
		if err != nil {
			p.fail(fd.GetName(), err)
			return false
		}
		if !emitService(svc, yield) {
			return false
		}
	}
	return yield(event.FileExited{Path: file.Path})
}

func (p *Producer) fail(file string, err error) {
	if resErr, ok := err.(*descriptor.ResolutionError); ok {
		p.err = &ResolutionFailure{File: file, TypeName: resErr.TypeName}
		return
	}
	p.err = err
}

// emitMessage walks one message's options, nested types, nested enums, and
// fields in declaration order, bracketing consecutive fields that share a
// oneof with OneofGroupEntered/OneofGroupExited.
func emitMessage(mt descriptor.MessageType, yield func(event.Event) bool) bool {
	if !yield(event.TypeEntered{Type: mt}) {
		return false
	}
	for _, opt := range mt.Options {
		if !yield(event.TypeOptionDiscovered{Type: mt.Name, Option: opt}) {
			return false
		}
	}
	for _, nested := range mt.NestedTypes {
		if !emitMessage(nested, yield) {
			return false
		}
	}
	for _, nested := range mt.NestedEnums {
		if !emitEnum(nested, yield) {
			return false
		}
	}

	openOneof := ""
	inOneof := false
	for _, f := range mt.Fields {
		if f.OneofName != openOneof || !inOneof {
			if inOneof {
				if !yield(event.OneofGroupExited{Type: mt.Name, OneofName: openOneof}) {
					return false
				}
				inOneof = false
			}
			openOneof = f.OneofName
			if f.OneofName != "" {
				if !yield(event.OneofGroupEntered{Type: mt.Name, Oneof: findOneof(mt.Oneofs, f.OneofName)}) {
					return false
				}
				inOneof = true
			}
		}

		if !yield(event.FieldEntered{Field: f}) {
			return false
		}
		key := event.FieldKey{Type: mt.Name, Name: f.Name}
		for _, opt := range f.Options {
			if !yield(event.FieldOptionDiscovered{Field: key, Option: opt}) {
				return false
			}
		}
		if !yield(event.FieldExited{Field: key}) {
			return false
		}
	}
	if inOneof {
		if !yield(event.OneofGroupExited{Type: mt.Name, OneofName: openOneof}) {
			return false
		}
	}

	return yield(event.TypeExited{Type: mt.Name})
}

func emitEnum(et descriptor.EnumType, yield func(event.Event) bool) bool {
	if !yield(event.EnumEntered{Enum: et}) {
		return false
	}
	for _, c := range et.Constants {
		if !yield(event.EnumConstantDiscovered{Enum: et.Name, Constant: c}) {
			return false
		}
	}
	return yield(event.EnumExited{Enum: et.Name})
}

func emitService(svc descriptor.Service, yield func(event.Event) bool) bool {
	if !yield(event.ServiceEntered{Service: svc}) {
		return false
	}
	for _, rpc := range svc.Rpcs {
		if !yield(event.RpcDiscovered{Service: svc.Name, Rpc: rpc}) {
			return false
		}
	}
	return yield(event.ServiceExited{Service: svc.Name})
}

func findOneof(oneofs []descriptor.Oneof, name string) descriptor.Oneof {
	for _, o := range oneofs {
		if o.Name == name {
			return o
		}
	}
	return descriptor.Oneof{Name: name}
}

// ParseRequest reads and unmarshals a CodeGeneratorRequest from r, the
// shape protoc feeds to every plugin on stdin.
func ParseRequest(r io.Reader) (*pluginpb.CodeGeneratorRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &RequestParseError{Err: err}
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(data, req); err != nil {
		return nil, &RequestParseError{Err: err}
	}
	return req, nil
}
