// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/apiclient"
)

type course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestOne(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare", `{"id":1,"name":"Algebra"}`},
		{"wrapped", `{"success":true,"data":{"id":1,"name":"Algebra"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var one apiclient.One[course]
			require.NoError(t, json.Unmarshal([]byte(tt.body), &one))
			assert.Equal(t, course{ID: 1, Name: "Algebra"}, one.Value)
		})
	}
}

func TestOne_ResourceWithDataField(t *testing.T) {
	type blob struct {
		ID   int    `json:"id"`
		Data string `json:"data"`
	}

	var one apiclient.One[blob]
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"data":"x"}`), &one))
	assert.Equal(t, blob{ID: 3, Data: "x"}, one.Value)
}

func TestList(t *testing.T) {
	var bare apiclient.List[course]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":2}]`), &bare))
	assert.Len(t, bare.Items, 2)
	assert.Nil(t, bare.Meta)

	var wrapped apiclient.List[course]
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"id":1}],"pagination":{"page":1,"limit":10,"total":25}}`), &wrapped))
	assert.Len(t, wrapped.Items, 1)
	require.NotNil(t, wrapped.Meta)
	assert.Equal(t, 3, wrapped.Meta.TotalPages)

	var empty apiclient.List[course]
	require.NoError(t, json.Unmarshal([]byte(`{"data":null}`), &empty))
	assert.NotNil(t, empty.Items)
}
