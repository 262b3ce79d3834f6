package exec

// Executor is the pull-based operator contract. A caller drives iteration
// with Advance, which reports true when a new output batch is available, and
// claims the batch with TakeOutput. Init establishes iteration state and may
// be called again after exhaustion to restart from the beginning. Exhaustion
// is the ordinary termination signal, surfaced as a boolean, never as an
// error.
type Executor interface {
	Init() error
	Advance() (bool, error)
	TakeOutput() *LogicalTile
	AddChild(child Executor)
	GetChildren() []Executor
}

type executorBase struct {
	children []Executor
	output   *LogicalTile
}

func (e *executorBase) AddChild(child Executor) {
	e.children = append(e.children, child)
}

func (e *executorBase) GetChildren() []Executor {
	return e.children
}

func (e *executorBase) setOutput(tile *LogicalTile) {
	e.output = tile
}

// TakeOutput transfers ownership of the current output batch to the caller.
// Callable once per successful Advance.
func (e *executorBase) TakeOutput() *LogicalTile {
	if e.output == nil {
		panic("no output available, call Advance first")
	}
	out := e.output
	e.output = nil
	return out
}

func ConnectExecutors(childExecutors []Executor, parent Executor) {
	for _, child := range childExecutors {
		parent.AddChild(child)
	}
}
