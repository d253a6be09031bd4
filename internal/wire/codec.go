package wire

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
)

// Name is the codec name; clients select it via the gRPC content subtype
// (application/grpc+alphareg).
const Name = "alphareg"

func init() {
	encoding.RegisterCodec(codec{})
}

// codec marshals wire messages for gRPC.
type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("wire: cannot marshal %T", v)
	}
	return m.appendTo(nil), nil
}

func (codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("wire: cannot unmarshal into %T", v)
	}
	return m.decode(data)
}

func (codec) Name() string { return Name }

// errSkip tells walkFields the handler does not know the field; the field is
// skipped whole, as protobuf parsers do with unknown fields.
var errSkip = errors.New("wire: unknown field")

// fieldFunc handles one field body and returns how many bytes it consumed.
type fieldFunc func(num protowire.Number, typ protowire.Type, field []byte) (int, error)

// walkFields iterates the fields of a serialized message, dispatching each
// to fn and skipping the ones fn rejects with errSkip.
func walkFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		used, err := fn(num, typ, b)
		if errors.Is(err, errSkip) {
			used = protowire.ConsumeFieldValue(num, typ, b)
			if used < 0 {
				return protowire.ParseError(used)
			}
		} else if err != nil {
			return err
		}
		b = b[used:]
	}
	return nil
}

// appendMessage appends a length-delimited submessage field.
func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendTo(nil))
}

// consumeMessage decodes a length-delimited submessage field body.
func consumeMessage(field []byte, m Message) (int, error) {
	body, n := protowire.ConsumeBytes(field)
	if n < 0 {
		return n, protowire.ParseError(n)
	}
	if err := m.decode(body); err != nil {
		return n, err
	}
	return n, nil
}
