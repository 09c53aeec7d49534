package audio

import (
	"errors"
	"io"
)

// writeSeeker is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes on Close.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}

	n := copy(w.buf[w.pos:], p)
	w.pos += n

	return n, nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(w.pos)
	case io.SeekEnd:
		base = int64(len(w.buf))
	default:
		return 0, errors.New("audio: invalid whence")
	}

	pos := base + offset
	if pos < 0 {
		return 0, errors.New("audio: negative seek position")
	}

	w.pos = int(pos)

	return pos, nil
}
