package models

import (
	"encoding/json"
	"errors"
)

type lookupError struct {
	Error string `json:"error"`
}

// MarshalJSON writes a failed lookup as {"error": "..."} and a successful one
// as the bare DomainRecord.
func (r LookupResult) MarshalJSON() ([]byte, error) {
	var v any
	switch {
	case r.Error != "":
		v = lookupError{Error: r.Error}
	case r.Record != nil:
		v = r.Record
	default:
		return nil, errors.New("lookup result has neither a record nor an error")
	}
	return json.Marshal(v)
}

func (r *LookupResult) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["error"]; ok {
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return err
		}
		*r = LookupResult{Error: msg}
		return nil
	}

	var rec DomainRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*r = LookupResult{Record: &rec}
	return nil
}
