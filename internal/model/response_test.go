package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeShape(t *testing.T) {
	t.Run("list envelope", func(t *testing.T) {
		res := OK(ListModel[Car]{
			Items:       []Car{{ID: 1, Name: "Model S", CategoryID: 2}},
			TotalPages:  1,
			CurrentPage: 1,
		})

		b, err := json.Marshal(res)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(b, &raw))
		assert.Equal(t, true, raw["success"])
		assert.NotContains(t, raw, "errorMessage")

		data := raw["data"].(map[string]any)
		assert.Equal(t, float64(1), data["totalPages"])
		assert.Equal(t, float64(1), data["currentPage"])
		items := data["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, float64(2), items[0].(map[string]any)["categoryId"])
	})

	t.Run("failure envelope", func(t *testing.T) {
		b, err := json.Marshal(Fail[*Car]("car not found"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":null,"success":false,"errorMessage":"car not found"}`, string(b))
	})
}
