package reference

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// Text is a string field that also accepts JSON numbers, booleans and null.
// Objects and arrays decode to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Text(strconv.FormatBool(b))
		return nil
	}

	*t = ""
	return nil
}

func (t Text) String() string {
	return string(t)
}

// IDList is a list of opaque identifiers. A value that is not an array
// decodes to an empty list, and non-string elements are dropped.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	ids := make(IDList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			continue
		}
		ids = append(ids, s)
	}
	*l = ids
	return nil
}
