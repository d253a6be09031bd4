// Package wire defines the protobuf wire messages and gRPC service
// descriptors for the register protocol. Messages are marshaled with
// encoding/protowire and served through a registered gRPC codec; the
// schema is recorded in api/alphareg.proto.
package wire
