package cus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the top-level document returned by the contacts API.
type Payload struct {
	Bodies []RegulatoryBody `json:"cus"`
}

// RegulatoryBody is one controlling authority ("cus" record).
type RegulatoryBody struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Region         string          `json:"region"`
	Timezone       int             `json:"timezone"`
	Type           string          `json:"type"`
	KEProviders    []string        `json:"keproviders"`
	Flags          string          `json:"flags"`
	InputWSVersion string          `json:"inputwsversion"`
	Authority      Authority       `json:"soun"`
	Certificates   json.RawMessage `json:"certificates,omitempty"`
	Comment        string          `json:"comment"`
	UFTKProviders  []string        `json:"uftkproviders"`
	NewCodes       []string        `json:"newcodes"`
}

// Authority carries the registration and contact details of a regulatory body.
type Authority struct {
	ShortName    string `json:"shortname"`
	FullName     string `json:"fullname"`
	ValidFrom    Date   `json:"validfrom"`
	INN          string `json:"inn"`
	KPP          string `json:"kpp"`
	Address      string `json:"address"`
	Document     string `json:"document"`
	DocumentNum  string `json:"documentnum"`
	DocumentDate Date   `json:"documentdate"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	ValidTo      Date   `json:"validto"`
}

// dateLayouts are tried in order when decoding a Date.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Date is a calendar timestamp as the API sends it: usually without a zone
// offset, sometimes empty or null.
type Date struct {
	time.Time
}

// UnmarshalJSON accepts the zone-less API layout, RFC 3339, a bare date, an
// empty string or null. Empty values decode to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("decode date: unsupported layout %q", raw)
}

// MarshalJSON writes the zone-less layout, or null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayouts[0]))
}
