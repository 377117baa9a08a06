package types

import (
	"encoding/json"
	"strconv"
)

// StringID is an identifier that arrives on the wire as either a JSON string
// or a JSON number. Comparisons always happen on the string form, so numeric
// and string spellings of the same id compare equal.
type StringID string

func (s StringID) String() string { return string(s) }

func (s StringID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *StringID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = StringID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*s = StringID(asNumber.String())
	return nil
}

// FormatInt renders an integer id in its canonical string form.
func FormatInt(id int64) StringID {
	return StringID(strconv.FormatInt(id, 10))
}
