package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every wire type the codec can carry.
type Message interface {
	appendTo(b []byte) []byte
	decode(b []byte) error
}

// Round mirrors the protocol's round identifier on the wire.
type Round struct {
	Tick    uint64
	Process uint64
}

func (m *Round) appendTo(b []byte) []byte {
	if m.Tick != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, m.Tick)
	}
	if m.Process != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, m.Process)
	}
	return b
}

func (m *Round) decode(b []byte) error {
	*m = Round{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(field)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			m.Tick = v
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(field)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			m.Process = v
			return n, nil
		}
		return 0, errSkip
	})
}

// Value is a proposal payload tagged with the round that wrote it.
type Value struct {
	Payload            []byte
	LastRoundWithWrite Round
}

func (m *Value) appendTo(b []byte) []byte {
	if len(m.Payload) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload)
	}
	b = appendMessage(b, 2, &m.LastRoundWithWrite)
	return b
}

func (m *Value) decode(b []byte) error {
	*m = Value{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			m.Payload = append([]byte(nil), v...)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			return consumeMessage(field, &m.LastRoundWithWrite)
		}
		return 0, errSkip
	})
}

// RegisterState is a register snapshot. A nil Value means the register has
// accepted nothing yet.
type RegisterState struct {
	LastRoundEntered Round
	Value            *Value
}

func (m *RegisterState) appendTo(b []byte) []byte {
	b = appendMessage(b, 1, &m.LastRoundEntered)
	if m.Value != nil {
		b = appendMessage(b, 2, m.Value)
	}
	return b
}

func (m *RegisterState) decode(b []byte) error {
	*m = RegisterState{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeMessage(field, &m.LastRoundEntered)
		case num == 2 && typ == protowire.BytesType:
			m.Value = new(Value)
			return consumeMessage(field, m.Value)
		}
		return 0, errSkip
	})
}

// ReadRequest asks an acceptor to promise the given round.
type ReadRequest struct {
	Round Round
}

func (m *ReadRequest) appendTo(b []byte) []byte {
	return appendMessage(b, 1, &m.Round)
}

func (m *ReadRequest) decode(b []byte) error {
	*m = ReadRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeMessage(field, &m.Round)
		}
		return 0, errSkip
	})
}

// ReadReply echoes the request round and carries the acceptor's snapshot.
type ReadReply struct {
	Round Round
	State RegisterState
}

func (m *ReadReply) appendTo(b []byte) []byte {
	b = appendMessage(b, 1, &m.Round)
	b = appendMessage(b, 2, &m.State)
	return b
}

func (m *ReadReply) decode(b []byte) error {
	*m = ReadReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeMessage(field, &m.Round)
		case num == 2 && typ == protowire.BytesType:
			return consumeMessage(field, &m.State)
		}
		return 0, errSkip
	})
}

// WriteRequest asks an acceptor to accept a tagged value.
type WriteRequest struct {
	Value Value
}

func (m *WriteRequest) appendTo(b []byte) []byte {
	return appendMessage(b, 1, &m.Value)
}

func (m *WriteRequest) decode(b []byte) error {
	*m = WriteRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeMessage(field, &m.Value)
		}
		return 0, errSkip
	})
}

// WriteReply reports the acceptor's post-call promise.
type WriteReply struct {
	Round            Round
	LastRoundEntered Round
}

func (m *WriteReply) appendTo(b []byte) []byte {
	b = appendMessage(b, 1, &m.Round)
	b = appendMessage(b, 2, &m.LastRoundEntered)
	return b
}

func (m *WriteReply) decode(b []byte) error {
	*m = WriteReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeMessage(field, &m.Round)
		case num == 2 && typ == protowire.BytesType:
			return consumeMessage(field, &m.LastRoundEntered)
		}
		return 0, errSkip
	})
}

// PingRequest is a failure-detector probe.
type PingRequest struct {
	From uint64
}

func (m *PingRequest) appendTo(b []byte) []byte {
	if m.From != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, m.From)
	}
	return b
}

func (m *PingRequest) decode(b []byte) error {
	*m = PingRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(field)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			m.From = v
			return n, nil
		}
		return 0, errSkip
	})
}

// PingReply acknowledges a probe.
type PingReply struct{}

func (m *PingReply) appendTo(b []byte) []byte { return b }

func (m *PingReply) decode(b []byte) error {
	*m = PingReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		return 0, errSkip
	})
}

// ProposeRequest submits a candidate value for decision.
type ProposeRequest struct {
	Value []byte
}

func (m *ProposeRequest) appendTo(b []byte) []byte {
	if len(m.Value) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func (m *ProposeRequest) decode(b []byte) error {
	*m = ProposeRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			return n, nil
		}
		return 0, errSkip
	})
}

// ProposeReply carries the decided value.
type ProposeReply struct {
	Value []byte
}

func (m *ProposeReply) appendTo(b []byte) []byte {
	if len(m.Value) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func (m *ProposeReply) decode(b []byte) error {
	*m = ProposeReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			return n, nil
		}
		return 0, errSkip
	})
}

// GetRequest asks a node for its current register snapshot.
type GetRequest struct{}

func (m *GetRequest) appendTo(b []byte) []byte { return b }

func (m *GetRequest) decode(b []byte) error {
	*m = GetRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		return 0, errSkip
	})
}

// GetReply carries a node's register snapshot.
type GetReply struct {
	State RegisterState
}

func (m *GetReply) appendTo(b []byte) []byte {
	return appendMessage(b, 1, &m.State)
}

func (m *GetReply) decode(b []byte) error {
	*m = GetReply{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeMessage(field, &m.State)
		}
		return 0, errSkip
	})
}
