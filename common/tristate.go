package common

// Tristate is a three-valued boolean, the result of evaluating a predicate
// over rows that may contain nulls. Only TristateTrue counts as a match;
// TristateUnknown propagates through AND/OR with Kleene semantics.
type Tristate int

const (
	TristateFalse Tristate = iota
	TristateTrue
	TristateUnknown
)

func TristateOf(b bool) Tristate {
	if b {
		return TristateTrue
	}
	return TristateFalse
}

func (t Tristate) IsTrue() bool {
	return t == TristateTrue
}

func (t Tristate) Not() Tristate {
	switch t {
	case TristateTrue:
		return TristateFalse
	case TristateFalse:
		return TristateTrue
	default:
		return TristateUnknown
	}
}

func (t Tristate) And(other Tristate) Tristate {
	if t == TristateFalse || other == TristateFalse {
		return TristateFalse
	}
	if t == TristateUnknown || other == TristateUnknown {
		return TristateUnknown
	}
	return TristateTrue
}

func (t Tristate) Or(other Tristate) Tristate {
	if t == TristateTrue || other == TristateTrue {
		return TristateTrue
	}
	if t == TristateUnknown || other == TristateUnknown {
		return TristateUnknown
	}
	return TristateFalse
}

func (t Tristate) String() string {
	switch t {
	case TristateTrue:
		return "true"
	case TristateFalse:
		return "false"
	default:
		return "unknown"
	}
}
