package core

// Action is a semantic input, decoupled from the key that produced it.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect  // pick the gem under the cursor, or swap with the picked one
	ActionCancel  // drop the picked gem
	ActionConfirm // continue after a level ends
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Select", "Cancel",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions and the pointer click gathered between two
// ticks. The zero value is an empty frame.
type InputFrame struct {
	set     uint32
	click   Point
	clicked bool
}

// Point is a screen position.
type Point struct{ X, Y int }

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered this frame.
func (f *InputFrame) Set(a Action) {
	if a < actionCount {
		f.set |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.set&(1<<a) != 0
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return f.set == 0 && !f.clicked
}

// Click records a pointer click at screen position (x, y). A later click in
// the same frame replaces it.
func (f *InputFrame) Click(x, y int) {
	f.click = Point{X: x, Y: y}
	f.clicked = true
}

// Clicked returns the click recorded this frame, if any.
func (f InputFrame) Clicked() (x, y int, ok bool) {
	return f.click.X, f.click.Y, f.clicked
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}
