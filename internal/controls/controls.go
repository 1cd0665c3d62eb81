package controls

// Step is the move amount passed to the camera per held key per frame. The camera normalizes
// horizontal movement, so only its sign matters there; vertical moves use it as-is.
const Step = float32(0.1)

// Mover is the camera surface the controls drive.
type Mover interface {
	Move(x, y, z float32)
	AddRotation(dx, dy float32)
}

// State is one frame of sampled input: held movement keys and the pointer delta in pixels
// (positive X right, positive Y down, as window systems report it).
type State struct {
	Forward, Back bool // W, S
	Left, Right   bool // A, D
	Down, Up      bool // Q, E
	MouseDX       float32
	MouseDY       float32
	Look          bool // pointer captured; when false the delta is ignored
}

// Apply issues one Move per held key, in W S A D Q E order, then the pointer rotation.
// The delta is negated so moving the pointer right turns right and moving it up looks up.
func Apply(m Mover, s State) {
	if s.Forward {
		m.Move(0, Step, 0)
	}
	if s.Back {
		m.Move(0, -Step, 0)
	}
	if s.Left {
		m.Move(-Step, 0, 0)
	}
	if s.Right {
		m.Move(Step, 0, 0)
	}
	if s.Down {
		m.Move(0, 0, -Step)
	}
	if s.Up {
		m.Move(0, 0, Step)
	}
	if s.Look && (s.MouseDX != 0 || s.MouseDY != 0) {
		m.AddRotation(-s.MouseDX, -s.MouseDY)
	}
}
