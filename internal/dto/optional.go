package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalUUID tells an absent JSON key apart from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
