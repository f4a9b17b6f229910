package model

// Identified is anything that lives in a sibling sequence keyed by id.
type Identified interface {
	GetID() string
}

// FindChild returns the element of seq with the given id.
func FindChild[T Identified](seq []T, id string) (T, bool) {
	for _, child := range seq {
		if child.GetID() == id {
			return child, true
		}
	}
	var zero T
	return zero, false
}

// HasChild reports whether seq holds an element with the given id.
func HasChild[T Identified](seq []T, id string) bool {
	_, ok := FindChild(seq, id)
	return ok
}

// AppendChild returns a new sequence with child appended. seq is not modified.
func AppendChild[T Identified](seq []T, child T) []T {
	out := make([]T, 0, len(seq)+1)
	out = append(out, seq...)
	return append(out, child)
}

// ReplaceChild returns a new sequence where the element with the given id is
// replaced by child, keeping its position. Reports false and returns seq
// unchanged if no element matches.
func ReplaceChild[T Identified](seq []T, id string, child T) ([]T, bool) {
	idx := indexOf(seq, id)
	if idx < 0 {
		return seq, false
	}
	out := make([]T, len(seq))
	copy(out, seq)
	out[idx] = child
	return out, true
}

// RemoveChild returns a new sequence without the element with the given id.
// Reports false and returns seq unchanged if no element matches.
func RemoveChild[T Identified](seq []T, id string) ([]T, bool) {
	idx := indexOf(seq, id)
	if idx < 0 {
		return seq, false
	}
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	return append(out, seq[idx+1:]...), true
}

func indexOf[T Identified](seq []T, id string) int {
	for i, child := range seq {
		if child.GetID() == id {
			return i
		}
	}
	return -1
}
