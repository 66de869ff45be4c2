package extension

// State is the lifecycle state of an extension.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateActive
	StateError
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateActive:
		return "active"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
