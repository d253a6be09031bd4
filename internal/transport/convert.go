package transport

import (
	"alphareg/internal/register"
	"alphareg/internal/round"
	"alphareg/internal/wire"
)

func roundToWire(r round.Round) wire.Round {
	return wire.Round{Tick: r.Tick, Process: uint64(r.Process)}
}

func roundFromWire(r wire.Round) round.Round {
	return round.Round{Tick: r.Tick, Process: round.ID(r.Process)}
}

func valueToWire(v register.Value[[]byte]) wire.Value {
	return wire.Value{
		Payload:            v.Value,
		LastRoundWithWrite: roundToWire(v.LastRoundWithWrite),
	}
}

func valueFromWire(v wire.Value) register.Value[[]byte] {
	return register.Value[[]byte]{
		Value:              v.Payload,
		LastRoundWithWrite: roundFromWire(v.LastRoundWithWrite),
	}
}

func stateToWire(st register.State[[]byte]) wire.RegisterState {
	out := wire.RegisterState{LastRoundEntered: roundToWire(st.LastRoundEntered)}
	if st.Value != nil {
		v := valueToWire(*st.Value)
		out.Value = &v
	}
	return out
}

func stateFromWire(st wire.RegisterState) register.State[[]byte] {
	out := register.State[[]byte]{LastRoundEntered: roundFromWire(st.LastRoundEntered)}
	if st.Value != nil {
		v := valueFromWire(*st.Value)
		out.Value = &v
	}
	return out
}

// StateToWire exposes the snapshot conversion for the public Get service.
func StateToWire(st register.State[[]byte]) wire.RegisterState {
	return stateToWire(st)
}
