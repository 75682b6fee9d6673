package keyframe

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"sort"
	"strconv"

	"github.com/matt-g-everett/animatable/style"
)

// fingerprint hashes a canonical encoding of def. Map keys are visited in
// sorted order and every value is tagged with its kind, so the hash depends
// only on content.
func fingerprint(def Definition) [sha256.Size]byte {
	h := sha256.New()
	writeString(h, "easing")
	writeString(h, def.Easing)
	writeString(h, "style")
	writeValue(h, def.Style)
	writeString(h, "keyframes")

	keys := make([]string, 0, len(def.Keyframes))
	for key := range def.Keyframes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		writeString(h, key)
		writeValue(h, def.Keyframes[key])
	}

	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func writeString(h hash.Hash, s string) {
	io.WriteString(h, strconv.Itoa(len(s)))
	io.WriteString(h, ":")
	io.WriteString(h, s)
}

func writeValue(h hash.Hash, v any) {
	if n, ok := style.Number(v); ok {
		io.WriteString(h, "f")
		io.WriteString(h, strconv.FormatFloat(n, 'g', -1, 64))
		io.WriteString(h, ";")
		return
	}

	switch t := v.(type) {
	case nil:
		io.WriteString(h, "n;")
	case string:
		io.WriteString(h, "s")
		writeString(h, t)
	case bool:
		io.WriteString(h, "b"+strconv.FormatBool(t)+";")
	case style.Offset:
		io.WriteString(h, "o")
		writeValue(h, t.Width)
		writeValue(h, t.Height)
	case style.Style:
		writeMap(h, t)
	case map[string]any:
		writeMap(h, style.Style(t))
	case map[any]any:
		writeMap(h, style.FromMap(t))
	case []style.Style:
		io.WriteString(h, "[")
		for _, entry := range t {
			writeValue(h, entry)
		}
		io.WriteString(h, "]")
	case []map[string]any:
		io.WriteString(h, "[")
		for _, entry := range t {
			writeValue(h, entry)
		}
		io.WriteString(h, "]")
	case []any:
		io.WriteString(h, "[")
		for _, entry := range t {
			writeValue(h, entry)
		}
		io.WriteString(h, "]")
	default:
		writeString(h, fmt.Sprintf("%T:%v", v, v))
	}
}

func writeMap(h hash.Hash, m style.Style) {
	if m == nil {
		io.WriteString(h, "n;")
		return
	}
	io.WriteString(h, "{")
	for _, key := range m.Keys() {
		writeString(h, key)
		writeValue(h, m[key])
	}
	io.WriteString(h, "}")
}
