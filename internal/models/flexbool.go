package models

import (
	"encoding/json"
	"strings"
)

// FlexBool accepts both JSON booleans and string forms like "TRUE".
// Manually submitted events arrive from spreadsheet-style sources where
// the verified flag is a string.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = FlexBool(asBool)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}
	*b = FlexBool(strings.EqualFold(strings.TrimSpace(asString), "true"))
	return nil
}

// Bool unwraps the flag.
func (b FlexBool) Bool() bool {
	return bool(b)
}
