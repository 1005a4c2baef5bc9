package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a record id that accepts either a JSON number or a numeric string
// ("7"); the panel forms send both.
type ID uint

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id invalido: %q", s)
	}
	*id = ID(v)
	return nil
}

// Ptr returns nil for the zero id.
func (id *ID) Ptr() *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := uint(*id)
	return &v
}

// MessageResponse is the plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
