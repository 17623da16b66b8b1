package borg

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp decodes the timestamps borg emits in its JSON output. Depending
// on version and locale settings these come with or without sub-second
// precision and with or without a zone offset; zone-less values are taken as
// local time, matching how borg itself renders them.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("borg: unrecognized timestamp %q", s)
}
