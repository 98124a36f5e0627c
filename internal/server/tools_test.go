package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	require.NotEmpty(t, tools)

	expectedTools := []string{
		"image_load",
		"image_info",
		"image_encode",
		"image_save",
		"image_release",
		"image_crop",
		"image_crop_region",
		"image_resize",
		"image_rotate",
		"image_flip",
		"image_grayscale",
		"image_invert",
		"image_color_mask",
		"image_split",
		"image_reverse",
		"image_retime",
		"image_merge",
		"image_merge_gif",
		"image_mirage",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		_, dup := toolMap[tool.Name]
		assert.False(t, dup, "duplicate tool %s", tool.Name)
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		assert.Contains(t, toolMap, name, "Expected tool %s not found", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description)
			require.NotNil(t, tool.InputSchema)
			assert.Equal(t, "object", tool.InputSchema["type"])

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			require.True(t, ok, "properties should be a map")

			if required, ok := tool.InputSchema["required"]; ok {
				names, ok := required.([]string)
				require.True(t, ok, "required should be []string")
				for _, name := range names {
					assert.Contains(t, props, name, "required property %s is not defined", name)
				}
			}
		})
	}
}

// Every tool the server advertises must be dispatched by executeTool.
func TestToolDefinitions_AllDispatched(t *testing.T) {
	s := New(nil)
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
			if err != nil {
				assert.NotContains(t, err.Error(), "unknown tool")
			}
		})
	}
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, tool := range decoded {
		assert.Contains(t, tool, "inputSchema")
		assert.Contains(t, tool, "name")
	}
}
