package rowcodec

// bitWriter accumulates bits MSB-first into a growing byte buffer.
// The write cursor always sits at the first unused bit of the last byte.
type bitWriter struct {
	buf  []byte
	free uint // unused low bits in buf[len(buf)-1]; 0 when byte-aligned
}

// writeBits appends the low n bits of v, most significant bit first.
func (w *bitWriter) writeBits(v uint64, n uint) {
	for n > 0 {
		if w.free == 0 {
			w.buf = append(w.buf, 0)
			w.free = 8
		}
		take := w.free
		if n < take {
			take = n
		}
		chunk := (v >> (n - take)) & ((1 << take) - 1)
		w.buf[len(w.buf)-1] |= byte(chunk << (w.free - take))
		w.free -= take
		n -= take
	}
}

// align advances the cursor to the next byte boundary, zero-filling the
// remainder of the current byte.
func (w *bitWriter) align() {
	w.free = 0
}

// writeBytes appends p verbatim. The cursor must be byte-aligned.
func (w *bitWriter) writeBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

func (w *bitWriter) bytes() []byte { return w.buf }

// bitReader consumes bits MSB-first from a byte buffer.
type bitReader struct {
	data []byte
	pos  int // bit offset from the start of data
}

func (r *bitReader) remaining() int { return len(r.data)*8 - r.pos }

// readBits consumes the next n bits and returns them right-aligned.
func (r *bitReader) readBits(n uint) (uint64, error) {
	if int(n) > r.remaining() {
		return 0, ErrShortBuffer
	}
	var v uint64
	left := n
	for left > 0 {
		byteIdx := r.pos / 8
		bitIdx := uint(r.pos % 8)
		avail := 8 - bitIdx
		take := avail
		if left < take {
			take = left
		}
		b := r.data[byteIdx]
		chunk := uint64(b>>(avail-take)) & ((1 << take) - 1)
		v = v<<take | chunk
		r.pos += int(take)
		left -= take
	}
	return v, nil
}

// align discards bits up to the next byte boundary. Padding content is
// ignored, not validated.
func (r *bitReader) align() {
	r.pos = (r.pos + 7) &^ 7
}

// readBytes consumes k whole bytes. The cursor must be byte-aligned.
func (r *bitReader) readBytes(k int) ([]byte, error) {
	byteIdx := r.pos / 8
	if byteIdx+k > len(r.data) {
		return nil, ErrShortBuffer
	}
	out := make([]byte, k)
	copy(out, r.data[byteIdx:byteIdx+k])
	r.pos += k * 8
	return out, nil
}
