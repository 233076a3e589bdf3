// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ClientStateTable represents the 'client.state' table
type ClientStateTable struct {
	Table     string
	Key       string
	Value     string
	UpdatedAt string
}

// ClientState is the schema definition for client.state
var ClientState = ClientStateTable{
	Table:     "client.state",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ClientStateTable) Columns() []string {
	return []string{
		t.Key, t.Value, t.UpdatedAt,
	}
}
