package normalize

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cafepos/internal/remote"
)

// foldChain strips combining marks so "Giá Bán" and "gia ban" compare equal.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	// đ carries no combining mark, so NFD leaves it alone.
	return strings.ReplaceAll(out, "đ", "d")
}

// field resolves one logical attribute against a loosely-keyed row: the
// ranked substring patterns are tried in order against the folded key set,
// then the conventional fallback key name.
type field struct {
	patterns []string
	fallback string
}

func (f field) lookup(row remote.Row) (any, bool) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	// Map order is random; sort so resolution is deterministic when two
	// keys match the same pattern.
	sort.Strings(keys)
	for _, p := range f.patterns {
		for _, k := range keys {
			if strings.Contains(fold(k), p) {
				return row[k], true
			}
		}
	}
	if f.fallback != "" {
		if v, ok := row[f.fallback]; ok {
			return v, true
		}
	}
	return nil, false
}

func (f field) str(row remote.Row) (string, bool) {
	v, ok := f.lookup(row)
	if !ok {
		return "", false
	}
	s := asString(v)
	return s, s != ""
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// asMoney parses integer currency units, tolerating sheet formats like
// "50.000" and "50,000".
func asMoney(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case string:
		clean := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' || r == '-' {
				return r
			}
			return -1
		}, t)
		n, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asInt(v any) int {
	return int(asMoney(v))
}

// truthy values the sheet emits for flag columns: booleans, "TRUE", "x",
// "có", and the out-of-stock label itself.
var truthy = map[string]bool{
	"true": true, "1": true, "yes": true, "x": true, "co": true,
	"het hang": true, "out of stock": true,
}

func asFlag(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return truthy[fold(asString(v))]
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := asString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
