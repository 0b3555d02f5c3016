package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one row of the acquisitions list export. Only the fields the
// digest uses are decoded; unknown fields are ignored.
type Record struct {
	Title                   string `json:"title"`
	Author                  string `json:"author"`
	Series                  string `json:"series"`
	Edition                 string `json:"edition"`
	PublicationDate         Value  `json:"publication_date"`
	PermanentCallNumber     string `json:"permanent_call_number"`
	PermanentCallNumberType string `json:"permanent_call_number_type"`
	LocationName            string `json:"location_name"`
	ItemID                  Value  `json:"item_id"`
	PrimoLink               string `json:"primo_link"`
	SelfLink                string `json:"self_link"`
}

// Value holds a scalar that the export emits either as a JSON string or as a
// JSON number. Null and absent both decode to the empty Value.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case 't', 'f':
		*v = Value(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported value %s: %w", data, err)
		}
		*v = Value(n.String())
	}
	return nil
}

func (v Value) String() string {
	return string(v)
}

// Int returns the value as an integer when it is one.
func (v Value) Int() (int, bool) {
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
