package stackaddr

import (
	"fmt"
	"strings"
)

// Segment is one addressable unit in a StackAddr: a protocol token, an
// identity, a path component, or a metadata pair.
//
// The set of implementations is closed — Protocol, Identity, Path, and
// Metadata — so consumers dispatch with exhaustive type switches rather
// than reflection.
type Segment interface {
	fmt.Stringer

	// segment seals the interface to the variants defined in this package.
	segment()
}

// Path is a file or resource path segment, rendered as "/<path>".
type Path string

// String renders the path with its leading slash.
func (p Path) String() string {
	return "/" + string(p)
}

func (Path) segment() {}

// Metadata is a key-value annotation segment, rendered as
// "/meta/<key>/<value>".
type Metadata struct {
	Key   string
	Value string
}

// Meta creates a metadata segment.
func Meta(key, value string) Metadata {
	return Metadata{Key: key, Value: value}
}

// String renders the metadata pair.
func (m Metadata) String() string {
	return "/meta/" + m.Key + "/" + m.Value
}

func (Metadata) segment() {}

// SegmentsEqual reports exact structural equality of two segments: same
// variant and same payload.
func SegmentsEqual(a, b Segment) bool {
	switch x := a.(type) {
	case Protocol:
		y, ok := b.(Protocol)
		return ok && x == y
	case Identity:
		y, ok := b.(Identity)
		return ok && x.Equal(y)
	case Path:
		y, ok := b.(Path)
		return ok && x == y
	case Metadata:
		y, ok := b.(Metadata)
		return ok && x == y
	default:
		return false
	}
}

// SameVariant reports whether two segments carry the same discriminant tag,
// ignoring payload: two Protocols with equal codes, two Identities with
// equal codes, any two Paths, or any two Metadata pairs.
func SameVariant(a, b Segment) bool {
	switch x := a.(type) {
	case Protocol:
		y, ok := b.(Protocol)
		return ok && x.Code == y.Code
	case Identity:
		y, ok := b.(Identity)
		return ok && x.Code == y.Code
	case Path:
		_, ok := b.(Path)
		return ok
	case Metadata:
		_, ok := b.(Metadata)
		return ok
	default:
		return false
	}
}

// segmentKindRank orders the segment kinds for Compare: protocol before
// identity before path before metadata.
func segmentKindRank(s Segment) int {
	switch s.(type) {
	case Protocol:
		return 0
	case Identity:
		return 1
	case Path:
		return 2
	case Metadata:
		return 3
	default:
		return 4
	}
}

// segmentCompare defines a total order over segments consistent with
// SegmentsEqual: kind rank first, then the per-kind payload order.
func segmentCompare(a, b Segment) int {
	ra, rb := segmentKindRank(a), segmentKindRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case Protocol:
		return x.compare(b.(Protocol))
	case Identity:
		return x.compare(b.(Identity))
	case Path:
		return strings.Compare(string(x), string(b.(Path)))
	case Metadata:
		y := b.(Metadata)
		if c := strings.Compare(x.Key, y.Key); c != 0 {
			return c
		}
		return strings.Compare(x.Value, y.Value)
	default:
		return 0
	}
}

// cloneSegment deep-copies a segment so byte payloads are never shared
// across addresses.
func cloneSegment(s Segment) Segment {
	switch x := s.(type) {
	case Identity:
		if x.ID != nil {
			x.ID = append([]byte(nil), x.ID...)
		}
		return x
	default:
		// Protocol, Path, and Metadata are plain values.
		return s
	}
}
