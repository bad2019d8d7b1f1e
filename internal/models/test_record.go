package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TestRecord is a schema-less scratch document. Its JSON form is the field
// map with id and timestamps folded in.
type TestRecord struct {
	ID        string            `gorm:"primaryKey;type:varchar(36)"`
	Fields    datatypes.JSONMap
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Keys owned by the record itself; they are never taken from a client body.
var reservedTestKeys = []string{"id", "_id", "createdAt", "updatedAt"}

// MarshalJSON flattens the record into a single object.
func (r TestRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	out["createdAt"] = r.CreatedAt
	out["updatedAt"] = r.UpdatedAt
	return json.Marshal(out)
}

// UnmarshalJSON reads a flattened object back into a record.
func (r *TestRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		r.ID = id
	}
	if ts, ok := raw["createdAt"].(string); ok {
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	if ts, ok := raw["updatedAt"].(string); ok {
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	r.Fields = StripReserved(raw)
	return nil
}

// StripReserved returns a copy of fields without the keys the record owns.
func StripReserved(fields map[string]interface{}) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for _, k := range reservedTestKeys {
		delete(out, k)
	}
	return out
}

// Merge applies a shallow update: top-level keys in patch replace those in
// the record, everything else is kept.
func (r *TestRecord) Merge(patch map[string]interface{}) {
	if r.Fields == nil {
		r.Fields = datatypes.JSONMap{}
	}
	for k, v := range StripReserved(patch) {
		r.Fields[k] = v
	}
}
