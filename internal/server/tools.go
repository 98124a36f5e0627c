package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// idProperty is the schema for a single image handle argument.
func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// singleImageSchema is the input schema of tools that only take an image id.
func singleImageSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": idProperty("Image id returned by image_load or a previous tool"),
		},
		"required": []string{"id"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Images and Metadata
		{
			Name:        "image_load",
			Description: "Load a PNG, JPEG, GIF or WebP image from a file path or base64 text. Returns an id used by every other tool. Loading the same path twice returns the same id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 image data, optionally as a data: URL",
					},
				},
			},
		},
		{
			Name:        "image_info",
			Description: "Get width, height and animation details of an image: whether it has several frames, the frame count and the average frame duration in milliseconds.",
			InputSchema: singleImageSchema(),
		},
		{
			Name:        "image_encode",
			Description: "Encode an image and return it as base64 text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "webp", "gif"},
						"description": "Output format. Defaults to the configured output format",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "image_save",
			Description: "Write an image to disk. Without a path the file is named after the current time in the configured output directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Destination file path. Its extension selects the format when format is not given",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "webp", "gif"},
						"description": "Output format",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "image_release",
			Description: "Forget an image id and free its memory.",
			InputSchema: singleImageSchema(),
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image. Width and height default to the rest of the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"left": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based). Default 0",
						"default":     0,
					},
					"top": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based). Default 0",
						"default":     0,
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Region width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Region height in pixels",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "image_crop_region",
			Description: "Crop a named region: a quadrant, a half or the center 50% of the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"region": map[string]interface{}{
						"type": "string",
						"enum": []string{
							"top-left", "top-right", "bottom-left", "bottom-right",
							"top-half", "bottom-half", "left-half", "right-half",
							"center",
						},
						"description": "Named region to extract",
					},
				},
				"required": []string{"id", "region"},
			},
		},

		// Transforms
		{
			Name:        "image_resize",
			Description: "Resize an image to exact dimensions using Lanczos resampling.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
				},
				"required": []string{"id", "width", "height"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image clockwise about its center. The canvas keeps its size and uncovered corners are transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"degrees": map[string]interface{}{
						"type":        "number",
						"description": "Clockwise rotation angle in degrees",
					},
				},
				"required": []string{"id", "degrees"},
			},
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally or vertically.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Mirror axis. Default horizontal",
						"default":     "horizontal",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "image_grayscale",
			Description: "Convert an image to grayscale, keeping alpha.",
			InputSchema: singleImageSchema(),
		},
		{
			Name:        "image_invert",
			Description: "Invert the colors of an image, keeping alpha.",
			InputSchema: singleImageSchema(),
		},
		{
			Name:        "image_color_mask",
			Description: "Blend every pixel halfway toward a tint color, keeping alpha.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Tint as hex, e.g. \"#ff8800\". Overrides r, g and b",
					},
					"r": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"g": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"b": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
				},
				"required": []string{"id"},
			},
		},

		// Animation
		{
			Name:        "image_split",
			Description: "Split an animated GIF or WebP into one PNG image per frame. Returns the frame ids in order.",
			InputSchema: singleImageSchema(),
		},
		{
			Name:        "image_reverse",
			Description: "Reverse the frame order of an animated GIF or WebP.",
			InputSchema: singleImageSchema(),
		},
		{
			Name:        "image_retime",
			Description: "Give every frame of an animated GIF or WebP the same delay.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image id"),
					"delay_ms": map[string]interface{}{
						"type":        "integer",
						"description": "Frame delay in milliseconds",
					},
				},
				"required": []string{"id", "delay_ms"},
			},
		},

		// Composition
		{
			Name:        "image_merge",
			Description: "Concatenate images side by side or stacked. Horizontal merges scale every image to the smallest height; vertical merges scale to the widest width.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"ids": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image ids in layout order",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Layout axis. Default horizontal",
						"default":     "horizontal",
					},
				},
				"required": []string{"ids"},
			},
		},
		{
			Name:        "image_merge_gif",
			Description: "Build an animated GIF with one frame per image, resized to the first image's dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"ids": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image ids in frame order",
					},
					"delay_ms": map[string]interface{}{
						"type":        "integer",
						"description": "Frame delay in milliseconds. Defaults to the configured frame delay",
					},
				},
				"required": []string{"ids"},
			},
		},
		{
			Name:        "image_mirage",
			Description: "Combine two images into a PNG that shows the visible image on a light background and the hidden image on a dark one.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"visible_id": idProperty("Image seen on a white background"),
					"hidden_id":  idProperty("Image revealed on a black background"),
				},
				"required": []string{"visible_id", "hidden_id"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
