package jsxtags

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
)

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ShiftSourceMap moves the generated columns of a version 3 sourcemap by the
// edits Render made to its code. Everything but "mappings" is kept byte for
// byte.
func ShiftSourceMap(raw []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return raw, nil
	}

	var sm struct {
		Mappings string `json:"mappings"`
	}
	if err := json.Unmarshal(raw, &sm); err != nil {
		return nil, zerr.Wrap(domain.ErrSourceMapInvalid, err.Error())
	}
	shifted, err := shiftMappings(sm.Mappings, edits)
	if err != nil {
		return nil, err
	}

	old := []byte(strconv.Quote(sm.Mappings))
	key := bytes.Index(raw, []byte(`"mappings"`))
	if key < 0 {
		return nil, zerr.Wrap(domain.ErrSourceMapInvalid, "mappings not found")
	}
	at := bytes.Index(raw[key:], old)
	if at < 0 {
		return nil, zerr.Wrap(domain.ErrSourceMapInvalid, "mappings not found")
	}
	at += key

	out := make([]byte, 0, len(raw)+len(shifted)-len(sm.Mappings))
	out = append(out, raw[:at]...)
	out = strconv.AppendQuote(out, shifted)
	return append(out, raw[at+len(old):]...), nil
}

func shiftMappings(mappings string, edits []Edit) (string, error) {
	byLine := make(map[int][]Edit)
	for _, e := range edits {
		byLine[e.Line] = append(byLine[e.Line], e)
	}

	lines := strings.Split(mappings, ";")
	for l, line := range lines {
		lineEdits := byLine[l]
		if len(lineEdits) == 0 || line == "" {
			continue
		}

		var b strings.Builder
		prevOld, prevNew := 0, 0
		for i, seg := range strings.Split(line, ",") {
			delta, n, err := decodeVLQ(seg)
			if err != nil {
				return "", zerr.With(err, "line", l)
			}
			col := prevOld + delta
			moved := shiftColumn(col, lineEdits)
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeVLQ(moved - prevNew))
			// Source fields are relative to the previous segment of any line
			// and stay as they are.
			b.WriteString(seg[n:])
			prevOld, prevNew = col, moved
		}
		lines[l] = b.String()
	}
	return strings.Join(lines, ";"), nil
}

// shiftColumn maps a column of the original line through its edits. A
// column inside removed text lands where the replacement starts.
func shiftColumn(col int, edits []Edit) int {
	shift := 0
	for _, e := range edits {
		switch {
		case col >= e.Column+e.Removed:
			shift += e.Inserted - e.Removed
		case col > e.Column:
			return e.Column + shift
		default:
			return col + shift
		}
	}
	return col + shift
}

// decodeVLQ reads one base64 VLQ value from the start of s and returns it
// with the number of bytes read.
func decodeVLQ(s string) (value, n int, err error) {
	shift, acc := 0, 0
	for n < len(s) {
		digit := strings.IndexByte(base64Digits, s[n])
		if digit < 0 {
			return 0, 0, zerr.With(zerr.Wrap(domain.ErrSourceMapInvalid, "invalid base64 digit"), "segment", s)
		}
		n++
		acc += (digit & 31) << shift
		if digit&32 == 0 {
			if acc&1 != 0 {
				return -(acc >> 1), n, nil
			}
			return acc >> 1, n, nil
		}
		shift += 5
	}
	return 0, 0, zerr.With(zerr.Wrap(domain.ErrSourceMapInvalid, "truncated segment"), "segment", s)
}

func encodeVLQ(v int) string {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	var b []byte
	for {
		digit := u & 31
		u >>= 5
		if u > 0 {
			digit |= 32
		}
		b = append(b, base64Digits[digit])
		if u == 0 {
			return string(b)
		}
	}
}
