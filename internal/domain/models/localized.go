package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocalizedText is a text value that clients send either as a plain string or
// as an {en, ar} pair. Both shapes are accepted on input; a value keeps the
// shape it arrived in. Plain takes precedence when set.
type LocalizedText struct {
	Plain string
	En    string
	Ar    string
}

func (t LocalizedText) IsZero() bool {
	return t.Plain == "" && t.En == "" && t.Ar == ""
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.Plain != "" {
		return json.Marshal(t.Plain)
	}

	return json.Marshal(struct {
		En string `json:"en"`
		Ar string `json:"ar"`
	}{En: t.En, Ar: t.Ar})
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Plain)
	}

	var pair struct {
		En string `json:"en"`
		Ar string `json:"ar"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("localized text: %w", err)
	}

	t.Plain = ""
	t.En = pair.En
	t.Ar = pair.Ar

	return nil
}

// Value stores the value as jsonb.
func (t LocalizedText) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (t *LocalizedText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("localized text: cannot scan %T", src)
	}
}

// LocalizedList is the list counterpart of LocalizedText: either a plain list
// of strings or an {en: [], ar: []} pair.
type LocalizedList struct {
	Plain []string
	En    []string
	Ar    []string
}

func (l LocalizedList) MarshalJSON() ([]byte, error) {
	if l.Plain != nil {
		return json.Marshal(l.Plain)
	}

	en := l.En
	if en == nil {
		en = []string{}
	}
	ar := l.Ar
	if ar == nil {
		ar = []string{}
	}

	return json.Marshal(struct {
		En []string `json:"en"`
		Ar []string `json:"ar"`
	}{En: en, Ar: ar})
}

func (l *LocalizedList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Plain)
	}

	var pair struct {
		En []string `json:"en"`
		Ar []string `json:"ar"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("localized list: %w", err)
	}

	l.Plain = nil
	l.En = pair.En
	l.Ar = pair.Ar

	return nil
}

func (l LocalizedList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (l *LocalizedList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = LocalizedList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("localized list: cannot scan %T", src)
	}
}
