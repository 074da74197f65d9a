package evfx

import (
	"context"
	"time"

	"github.com/flinq/pfx/diagx"
)

// Operator is the time-based coalescer: it buffers RawEvents for a
// delay window, then emits one semantically grouped batch. It buffers,
// resets its timer on every event, and runs a grouping pass on
// quiescence, expressed here as a Go goroutine racing three channel
// operations instead of a single async select.
type Operator struct {
	delay  time.Duration
	in     <-chan RawEvent
	out    chan<- []EventGroup
	logger *diagx.Logger
}

// NewOperator constructs an Operator reading RawEvents from in and
// writing grouped batches to out.
func NewOperator(delay time.Duration, in <-chan RawEvent, out chan<- []EventGroup) *Operator {
	return &Operator{delay: delay, in: in, out: out, logger: diagx.Default()}
}

// Run drives the coalescing loop until in closes or ctx is done. On
// quiescence (no event for delay) a non-empty buffer is flushed as
// exactly one batch; an empty buffer flushes nothing; upstream closing
// drains once (flushing any pending buffer) and exits cleanly — the
// Operator cannot fail intrinsically.
func (op *Operator) Run(ctx context.Context) {
	var buffer []RawEvent
	timer := time.NewTimer(op.delay)
	defer timer.Stop()

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		groups := ProcessEvents(buffer)
		if len(groups) > 0 {
			select {
			case op.out <- groups:
				op.logger.Debug().Field("raw", len(buffer)).Field("groups", len(groups)).Msg("operator flushed batch")
			case <-ctx.Done():
				return
			}
		}
		buffer = nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-op.in:
			if !ok {
				flush()
				return
			}
			buffer = append(buffer, evt)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(op.delay)
		case <-timer.C:
			flush()
			timer.Reset(op.delay)
		}
	}
}

// scratch holds the five accumulators ProcessEvents walks the input
// with.
type scratch struct {
	result       []EventGroup
	chars        []rune
	vert         [2]int // up, down
	horiz        [2]int // left, right
	others       *Others
	lastResize   *LastResize
	resizeIndex  int
	resizeIsSet  bool
}

func (s *scratch) flushChars() {
	if len(s.chars) == 0 {
		return
	}
	s.result = append(s.result, KeyBuffer{Chars: s.chars})
	s.chars = nil
}

func (s *scratch) flushVert() {
	if s.vert == [2]int{0, 0} {
		return
	}
	s.result = append(s.result, VerticalCursorBuffer{Up: s.vert[0], Down: s.vert[1]})
	s.vert = [2]int{0, 0}
}

func (s *scratch) flushHoriz() {
	if s.horiz == [2]int{0, 0} {
		return
	}
	s.result = append(s.result, HorizontalCursorBuffer{Left: s.horiz[0], Right: s.horiz[1]})
	s.horiz = [2]int{0, 0}
}

func (s *scratch) flushOthers() {
	if s.others == nil {
		return
	}
	s.result = append(s.result, *s.others)
	s.others = nil
}

func (s *scratch) flushAll() {
	s.flushChars()
	s.flushVert()
	s.flushHoriz()
	s.flushOthers()
}

// ProcessEvents is the pure grouping function: deterministic, total,
// and free of side effects. The Operator calls it once per flush; tests
// call it directly against fixed RawEvent sequences.
func ProcessEvents(events []RawEvent) []EventGroup {
	s := &scratch{}

	for _, evt := range events {
		switch e := evt.(type) {
		case Resize:
			s.flushAll()
			s.lastResize = &LastResize{Width: e.Width, Height: e.Height}
			if !s.resizeIsSet {
				s.resizeIndex = len(s.result)
				s.resizeIsSet = true
			}
		case KeyPress:
			key := e.Key()
			switch {
			case key.IsPrintable():
				s.flushVert()
				s.flushHoriz()
				s.flushOthers()
				s.chars = append(s.chars, key.Rune)
			case key.Code == KeyArrowUp || key.Code == KeyArrowDown:
				s.flushChars()
				s.flushHoriz()
				s.flushOthers()
				if key.Code == KeyArrowUp {
					s.vert[0]++
				} else {
					s.vert[1]++
				}
			case key.Code == KeyArrowLeft || key.Code == KeyArrowRight:
				s.flushChars()
				s.flushVert()
				s.flushOthers()
				if key.Code == KeyArrowLeft {
					s.horiz[0]++
				} else {
					s.horiz[1]++
				}
			default:
				s.accumulateOther(evt)
			}
		default:
			s.accumulateOther(evt)
		}
	}

	s.flushAll()

	if s.lastResize != nil {
		idx := s.resizeIndex
		if idx > len(s.result) {
			idx = len(s.result)
		}
		s.result = append(s.result, nil)
		copy(s.result[idx+1:], s.result[idx:])
		s.result[idx] = *s.lastResize
	}

	return s.result
}

func (s *scratch) accumulateOther(evt RawEvent) {
	s.flushChars()
	s.flushVert()
	s.flushHoriz()

	if s.others != nil && s.others.Event.Equal(evt) {
		s.others.Count++
		return
	}
	s.flushOthers()
	s.others = &Others{Event: evt, Count: 1}
}
