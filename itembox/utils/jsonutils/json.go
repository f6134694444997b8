package jsonutils

import (
	"encoding/json"
	"strings"
)

// ToJSON renders v as indented JSON, or an empty string if it cannot be
// marshaled.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
