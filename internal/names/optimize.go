package names

// SegmentKind distinguishes confirmed matches from unmatched runs.
type SegmentKind int

const (
	// SegmentMatch is a three-character confirmed name.
	SegmentMatch SegmentKind = iota
	// SegmentBuffer is a maximal run of characters no confirmed name covers.
	SegmentBuffer
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentMatch:
		return "match"
	case SegmentBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Segment is one piece of a Partition.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Partition is the ordered result of Optimize: confirmed matches interleaved
// with buffer runs. Concatenating every Text yields the input.
type Partition []Segment

// Buffers returns the buffer runs in order.
func (p Partition) Buffers() []string {
	var out []string
	for _, seg := range p {
		if seg.Kind == SegmentBuffer {
			out = append(out, seg.Text)
		}
	}
	return out
}

// Optimize computes the partition of raw that covers the most characters
// with confirmed names.
//
// value[i] is the best coverage of raw[i:]. A match at i is taken only when
// it strictly beats skipping the character, so ties favour the buffer. The
// decisions are kept in take rather than re-derived from value during
// reconstruction.
func Optimize(raw string, confirmed ConfirmedSet) Partition {
	s := []rune(raw)
	n := len(s)
	if n == 0 {
		return nil
	}

	value := make([]int, n+1)
	take := make([]bool, n+1)
	for i := n - 1; i >= 0; i-- {
		best := value[i+1]
		if i+ConfirmedLength <= n && confirmed.Contains(string(s[i:i+ConfirmedLength])) {
			if cand := ConfirmedLength + value[i+ConfirmedLength]; cand > best {
				best = cand
				take[i] = true
			}
		}
		value[i] = best
	}

	var (
		part   Partition
		buffer []rune
	)
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		part = append(part, Segment{Kind: SegmentBuffer, Text: string(buffer)})
		buffer = buffer[:0]
	}
	for i := 0; i < n; {
		if take[i] {
			flush()
			part = append(part, Segment{Kind: SegmentMatch, Text: string(s[i : i+ConfirmedLength])})
			i += ConfirmedLength
			continue
		}
		buffer = append(buffer, s[i])
		i++
	}
	flush()
	return part
}
