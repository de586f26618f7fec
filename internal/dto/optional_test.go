package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalTriState(t *testing.T) {
	type payload struct {
		Name    Optional[string]  `json:"name"`
		EndDate Optional[string]  `json:"endDate"`
		Weight  Optional[float64] `json:"weight"`
	}

	t.Run("absent key stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.Set)
		assert.False(t, p.EndDate.Set)
	})

	t.Run("explicit null is set and null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"endDate": null}`), &p))
		assert.True(t, p.EndDate.Set)
		assert.True(t, p.EndDate.Null)
		assert.False(t, p.Name.Set, "siblings keep their absent state")
	})

	t.Run("value is set and not null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": "Foundation", "weight": 1.5}`), &p))
		assert.True(t, p.Name.Set)
		assert.False(t, p.Name.Null)
		assert.Equal(t, "Foundation", p.Name.Value)
		assert.True(t, p.Weight.Set)
		assert.Equal(t, 1.5, p.Weight.Value)
	})

	t.Run("type mismatch surfaces the decode error", func(t *testing.T) {
		var p payload
		err := json.Unmarshal([]byte(`{"weight": "not a number"}`), &p)
		assert.Error(t, err)
	})
}

func TestUpdateStageRequest_IsEmpty(t *testing.T) {
	t.Run("no keys", func(t *testing.T) {
		var req UpdateStageRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		assert.True(t, req.IsEmpty())
	})

	t.Run("one key", func(t *testing.T) {
		var req UpdateStageRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name": "x"}`), &req))
		assert.False(t, req.IsEmpty())
	})

	t.Run("null key still counts as present", func(t *testing.T) {
		var req UpdateStageRequest
		require.NoError(t, json.Unmarshal([]byte(`{"endDate": null}`), &req))
		assert.False(t, req.IsEmpty())
	})

	t.Run("duration alone does not count", func(t *testing.T) {
		var req UpdateStageRequest
		require.NoError(t, json.Unmarshal([]byte(`{"duration": 42}`), &req))
		assert.True(t, req.IsEmpty())
	})
}
