package compress

import "fmt"

// lz78Signature tags an LZ78 stream so the decompressor can recognize
// the format without being told separately which encoder produced it.
var lz78Signature = [5]byte{'L', 'Z', '7', '8', 0}

// lz78Compress implements the classic LZ78 dictionary scheme from
// scratch: scan left to right, extend the current prefix w by the next
// byte c as long as w·c is already in the dictionary, and on a miss
// emit (index(w), c), insert w·c at the next index, and reset w to
// empty. If input is exhausted while w is still non-empty, the final
// record is written as a bare index with no trailing literal byte — the
// decoder recognizes this by running out of blob right after the
// varint, so it never collides with a genuine literal byte (including
// an actual 0x00 byte, which a sentinel-based scheme would lose).
func lz78Compress(data []byte) []byte {
	dict := map[string]int{"": 0}
	nextIndex := 1

	out := make([]byte, 0, len(data)+16)
	out = append(out, lz78Signature[:]...)
	out = appendUint32BE(out, uint32(len(data)))

	w := ""
	for _, c := range data {
		wc := w + string(c)
		if _, ok := dict[wc]; ok {
			w = wc
			continue
		}
		out = appendVarint(out, uint64(dict[w]))
		out = append(out, c)
		dict[wc] = nextIndex
		nextIndex++
		w = ""
	}
	if w != "" {
		out = appendVarint(out, uint64(dict[w]))
	}
	return out
}

// lz78Decompress reverses lz78Compress, validating the reconstructed
// length against the embedded header.
func lz78Decompress(blob []byte) ([]byte, error) {
	if len(blob) < 9 || [5]byte(blob[:5]) != lz78Signature {
		return nil, fmt.Errorf("lz78: malformed signature")
	}
	wantLen := readUint32BE(blob[5:9])
	pos := 9

	entries := [][]byte{{}}
	out := make([]byte, 0, wantLen)

	for pos < len(blob) {
		idx, n, err := readVarint(blob[pos:])
		if err != nil {
			return nil, fmt.Errorf("lz78: %w", err)
		}
		pos += n
		if int(idx) >= len(entries) {
			return nil, fmt.Errorf("lz78: dictionary index %d out of range (have %d entries)", idx, len(entries))
		}
		prefix := entries[idx]

		if pos >= len(blob) {
			// Bare trailing record: no literal byte follows. This
			// must be the final record in the stream.
			out = append(out, prefix...)
			break
		}

		sym := blob[pos]
		pos++
		entry := append(append([]byte{}, prefix...), sym)
		out = append(out, entry...)
		entries = append(entries, entry)
	}

	if uint32(len(out)) != wantLen {
		return nil, fmt.Errorf("lz78: reconstructed length %d does not match header length %d", len(out), wantLen)
	}
	return out, nil
}

func appendUint32BE(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func readUint32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// appendVarint writes v as unsigned LEB128: 7 data bits per byte, high
// bit set on every byte but the last.
func appendVarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func readVarint(b []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, c := range b {
		if shift >= 64 {
			return 0, 0, fmt.Errorf("varint overflow")
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("truncated varint")
}
