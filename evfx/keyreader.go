package evfx

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
)

// KeyReader turns a byte stream (stdin, in the common case) into
// RawEvents via an escape-sequence state machine, emitting evfx.RawEvent
// values directly rather than a bespoke intermediate key type.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader over input, defaulting to os.Stdin.
func NewKeyReader(input io.Reader) *KeyReader {
	if input == nil {
		input = os.Stdin
	}
	return &KeyReader{reader: bufio.NewReader(input)}
}

// ReadEvent reads the next key press, returning ctx.Err() if ctx is done
// before a byte arrives.
func (kr *KeyReader) ReadEvent(ctx context.Context) (RawEvent, error) {
	type result struct {
		evt RawEvent
		err error
	}
	ch := make(chan result, 1)
	go func() {
		evt, err := kr.readBlocking()
		ch <- result{evt, err}
	}()

	select {
	case r := <-ch:
		return r.evt, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (kr *KeyReader) readBlocking() (RawEvent, error) {
	b, err := kr.reader.ReadByte()
	if err != nil {
		return nil, err
	}

	if b == 27 {
		next, err := kr.reader.Peek(1)
		if err != nil || len(next) == 0 {
			return KeyPress{Code: KeyEscape}, nil
		}
		if next[0] == '[' {
			kr.reader.ReadByte()
			return kr.parseCSI()
		}
		return KeyPress{Code: KeyEscape}, nil
	}

	return kr.parseRegular(b), nil
}

func (kr *KeyReader) parseCSI() (RawEvent, error) {
	var seq []byte
	for {
		b, err := kr.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
	}
	return kr.decodeCSI(seq), nil
}

func (kr *KeyReader) decodeCSI(seq []byte) RawEvent {
	s := string(seq)

	switch s {
	case "A":
		return KeyPress{Code: KeyArrowUp}
	case "B":
		return KeyPress{Code: KeyArrowDown}
	case "C":
		return KeyPress{Code: KeyArrowRight}
	case "D":
		return KeyPress{Code: KeyArrowLeft}
	case "3~":
		return KeyPress{Code: KeyDelete}
	}

	if strings.Contains(s, ";") {
		parts := strings.Split(s, ";")
		if len(parts) != 2 || len(parts[1]) < 1 {
			return Other{Raw: s}
		}
		modNum, _ := strconv.Atoi(parts[1][:1])
		mod := decodeModifier(modNum)
		switch parts[1][1:] {
		case "A":
			return KeyPress{Code: KeyArrowUp, Modifier: mod}
		case "B":
			return KeyPress{Code: KeyArrowDown, Modifier: mod}
		case "C":
			return KeyPress{Code: KeyArrowRight, Modifier: mod}
		case "D":
			return KeyPress{Code: KeyArrowLeft, Modifier: mod}
		}
	}

	return Other{Raw: s}
}

func decodeModifier(modNum int) Modifier {
	switch modNum {
	case 2:
		return ModShift
	case 3:
		return ModAlt
	case 4:
		return ModShift | ModAlt
	case 5:
		return ModCtrl
	case 6:
		return ModCtrl | ModShift
	case 7:
		return ModCtrl | ModAlt
	case 8:
		return ModCtrl | ModAlt | ModShift
	default:
		return ModNone
	}
}

func (kr *KeyReader) parseRegular(b byte) RawEvent {
	switch b {
	case '\r', '\n':
		return KeyPress{Code: KeyEnter}
	case '\t':
		return KeyPress{Code: KeyTab}
	case ' ':
		return KeyPress{Code: KeyRune, Rune: ' '}
	case 127, 8:
		return KeyPress{Code: KeyBackspace}
	case 3:
		return KeyPress{Code: KeyCtrlC, Modifier: ModCtrl}
	case 4:
		return KeyPress{Code: KeyCtrlD, Modifier: ModCtrl}
	default:
		if b >= 1 && b <= 26 {
			return KeyPress{Code: KeyRune, Rune: rune('a' + b - 1), Modifier: ModCtrl}
		}
		if b >= 'A' && b <= 'Z' {
			return KeyPress{Code: KeyRune, Rune: rune(b), Modifier: ModShift}
		}
		if b >= 0x20 && b < 0x7f {
			return KeyPress{Code: KeyRune, Rune: rune(b)}
		}
		return Other{Raw: b}
	}
}
