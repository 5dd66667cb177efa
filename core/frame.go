package core

// Frame is one consistent assignment of variable names to concrete values.
// Within a frame a variable has exactly one value for its lifetime; extending
// a frame never mutates it in place.
type Frame map[string]any

// NewFrame returns an empty frame.
func NewFrame() Frame { return Frame{} }

// Bound returns the value bound to the variable and whether it is bound.
func (f Frame) Bound(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

// Clone returns an independent copy of the frame.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Extend returns a copy of the frame with the variable bound to value. The
// receiver is left untouched so sibling frames stay independent.
func (f Frame) Extend(name string, value any) Frame {
	out := f.Clone()
	out[name] = value
	return out
}

// Frames is an ordered sequence of alternative frames, i.e. the rows of a
// small relation. An empty Frames means "no match".
type Frames []Frame

// Empty reports whether no frames survived.
func (fs Frames) Empty() bool { return len(fs) == 0 }

// Single wraps one frame as a one-row Frames.
func Single(f Frame) Frames { return Frames{f} }
