package learning

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// NormalizeStringList decodes a JSON column that may hold an array of strings
// or a single comma-delimited string. Entries are trimmed and blanks dropped;
// order is preserved. Anything unparseable as JSON is treated as a raw
// comma-delimited string.
func NormalizeStringList(raw datatypes.JSON) []string {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return splitDelimited(string(raw))
	}
	switch v := decoded.(type) {
	case string:
		return splitDelimited(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

// EncodeStringList is the inverse used when saving; nil encodes as [].
func EncodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

func splitDelimited(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
