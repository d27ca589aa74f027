package drawinfo

import "fmt"

// BufferState describes how a mesh's CPU data relates to its GPU copy.
type BufferState uint8

const (
	// Unbuffered means no GPU copy exists.
	Unbuffered BufferState = iota
	// Clean means the GPU copy matches the CPU data.
	Clean
	// Dirty means the GPU copy exists but the CPU data has changed since.
	Dirty
)

func (s BufferState) String() string {
	switch s {
	case Unbuffered:
		return "unbuffered"
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return fmt.Sprintf("BufferState(%d)", uint8(s))
	}
}

// Tracker records whether geometry has been uploaded and whether it changed
// since the last upload. The zero value is Unbuffered.
//
// Typical usage:
//   - call MarkModified whenever CPU-side vertex data changes
//   - before drawing, check NeedsRebuffer and re-upload if set
//   - call MarkBuffered after a successful upload
//   - call MarkFreed when the GPU buffer is released
type Tracker struct {
	state BufferState
}

// MarkModified moves Clean to Dirty. Without a GPU copy there is nothing to
// diverge from, so it is a no-op when Unbuffered.
func (t *Tracker) MarkModified() {
	if t.state == Clean {
		t.state = Dirty
	}
}

// MarkBuffered records a successful upload.
func (t *Tracker) MarkBuffered() {
	t.state = Clean
}

// MarkFreed records that the GPU copy is gone. It does not imply the CPU
// data changed.
func (t *Tracker) MarkFreed() {
	t.state = Unbuffered
}

// NeedsRebuffer reports whether a GPU copy exists and is stale. It is false
// for data that was never buffered.
func (t *Tracker) NeedsRebuffer() bool {
	return t.state == Dirty
}

// HasBuffer reports whether a GPU copy exists.
func (t *Tracker) HasBuffer() bool {
	return t.state != Unbuffered
}

// State returns the current state.
func (t *Tracker) State() BufferState {
	return t.state
}

func (t *Tracker) String() string {
	return fmt.Sprintf("Tracker{has_buffer=%t, needs_rebuffer=%t}", t.HasBuffer(), t.NeedsRebuffer())
}
