package game

// Input is a read-only snapshot of the device state for one frame.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	// Pointer delta since the last frame, in screen units.
	LookDX float32
	LookDY float32

	// ToggleLock is set on the frame Escape was pressed.
	ToggleLock bool
	// StartGame is set on the frame the menu's play action fired.
	StartGame bool
	Quit      bool
}

// MovementAxes converts the held keys to a (right, forward) pair in {-1,0,1}.
func (i Input) MovementAxes() [2]int {
	var axes [2]int
	if i.Right {
		axes[0]++
	}
	if i.Left {
		axes[0]--
	}
	if i.Forward {
		axes[1]++
	}
	if i.Backward {
		axes[1]--
	}
	return axes
}

// InputSource yields one snapshot per frame. Implementations poll their
// device outside of the simulation.
type InputSource interface {
	Poll() Input
}

// ScriptedInput replays a fixed list of snapshots and then holds the last
// one, minus its one-shot actions. An empty script yields idle input.
type ScriptedInput struct {
	frames []Input
	cursor int
}

func NewScriptedInput(frames ...Input) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

func (s *ScriptedInput) Poll() Input {
	if len(s.frames) == 0 {
		return Input{}
	}
	if s.cursor >= len(s.frames) {
		held := s.frames[len(s.frames)-1]
		held.ToggleLock = false
		held.StartGame = false
		held.Quit = false
		held.LookDX, held.LookDY = 0, 0
		return held
	}
	in := s.frames[s.cursor]
	s.cursor++
	return in
}
