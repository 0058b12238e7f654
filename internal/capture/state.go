package capture

// State — состояние трассировщика.
type State int

const (
	Idle    State = iota // отрисовка идёт напрямую
	Tracing              // отрисовка захватывается
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Tracing:
		return "tracing"
	default:
		return "unknown"
	}
}

// Environment — окружение, в котором работает трассировщик.
type Environment string

const (
	Development Environment = "development"
	Simulator   Environment = "simulator"
	Production  Environment = "production"
)

// SupportsOffscreen сообщает, можно ли рисовать вне экрана и писать кадры на диск.
func (e Environment) SupportsOffscreen() bool {
	switch e {
	case Development, Simulator:
		return true
	default:
		return false
	}
}
