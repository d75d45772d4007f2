package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSchema builds the input schema of an editing tool. Every editing tool
// takes the source path and the optional output format and output path.
func imageSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	all := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"format": map[string]interface{}{
			"type":        "string",
			"description": "Output format: png, jpeg, gif, bmp or tiff. Defaults to the server setting (png).",
		},
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Optional file to write the result to, in addition to returning it",
		},
	}
	for k, v := range props {
		all[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": all,
		"required":   append([]string{"path"}, required...),
	}
}

func number(description string, def interface{}) map[string]interface{} {
	p := map[string]interface{}{
		"type":        "number",
		"description": description,
	}
	if def != nil {
		p["default"] = def
	}
	return p
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and alpha. Loaded images are cached for later edits.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Tone Adjustments
		{
			Name:        "image_brightness_contrast",
			Description: "Adjust brightness and contrast. Brightness is applied first, then contrast around mid gray. Returns the edited image as base64.",
			InputSchema: imageSchema(map[string]interface{}{
				"brightness": number("Brightness, -100 to 100", 0),
				"contrast":   number("Contrast, -100 to 100", 0),
			}),
		},
		{
			Name:        "image_color_balance",
			Description: "Shift the red, green and blue channels independently. Returns the edited image as base64.",
			InputSchema: imageSchema(map[string]interface{}{
				"red":   number("Red shift, -100 to 100", 0),
				"green": number("Green shift, -100 to 100", 0),
				"blue":  number("Blue shift, -100 to 100", 0),
			}),
		},
		{
			Name:        "image_grayscale",
			Description: "Convert to grayscale. Darkness divides the channel sum, so 3 is a plain average and larger values darken.",
			InputSchema: imageSchema(map[string]interface{}{
				"darkness": number("Channel sum divisor", 3),
			}),
		},

		// Filters
		{
			Name:        "image_filter",
			Description: "Apply a named color filter (sepia, vintage, noir, cool, warm, emerald, faded, dramatic, dusk, polaroid) blended with the original by intensity.",
			InputSchema: imageSchema(map[string]interface{}{
				"filter": map[string]interface{}{
					"type":        "string",
					"description": "Filter name",
					"enum":        filterNames(),
				},
				"intensity": number("Blend amount, 0 to 1", 1.0),
			}, "filter"),
		},
		{
			Name:        "image_filter_previews",
			Description: "Render a small thumbnail of the image through every filter, for choosing one.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Thumbnail format, defaults to the server setting",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_glitch",
			Description: "Apply glitch effects: RGB channel shift, scanlines, noise and displaced blocks. Each amount is 0 to 100. Use seed for reproducible output or random for a random preset.",
			InputSchema: imageSchema(map[string]interface{}{
				"rgb_shift": number("RGB channel shift amount", 0),
				"scanlines": number("Scanline darkening amount", 0),
				"noise":     number("Noise amount", 0),
				"blocks":    number("Block displacement amount", 0),
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for noise and blocks",
				},
				"random": map[string]interface{}{
					"type":        "boolean",
					"description": "Ignore the amounts and pick a random preset",
					"default":     false,
				},
			}),
		},
		{
			Name:        "image_pixelize",
			Description: "Pixelate the image by replacing square blocks with their average color.",
			InputSchema: imageSchema(map[string]interface{}{
				"block_size": map[string]interface{}{
					"type":        "integer",
					"description": "Block size in pixels",
					"default":     10,
				},
			}),
		},

		// Color Analysis
		{
			Name:        "image_palette",
			Description: "Extract the dominant colors as hex strings sorted by hue. Background-like colors and near duplicates are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"quantity": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},

		// Geometry
		{
			Name:        "image_transform",
			Description: "Flip or rotate the image. Operations are applied in order, each relative to the previous result. A free rotation in degrees is applied last and keeps the canvas size.",
			InputSchema: imageSchema(map[string]interface{}{
				"operations": map[string]interface{}{
					"type":        "array",
					"description": "Operations to apply in order",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"flip_horizontal", "flip_vertical", "rotate_right", "rotate_left"},
					},
				},
				"rotation": number("Free rotation in degrees, clockwise", 0),
			}),
		},
		{
			Name:        "image_crop",
			Description: "Crop a region. The region is clamped to the image and to a 20 pixel minimum. With preview set, returns the image with the crop overlay drawn instead of cropping. Without a region the default 80% center is used.",
			InputSchema: imageSchema(map[string]interface{}{
				"x":      number("Left edge in pixels", nil),
				"y":      number("Top edge in pixels", nil),
				"width":  number("Region width in pixels", nil),
				"height": number("Region height in pixels", nil),
				"preview": map[string]interface{}{
					"type":        "boolean",
					"description": "Draw the crop overlay instead of cropping",
					"default":     false,
				},
			}),
		},

		// Overlays
		{
			Name:        "image_text",
			Description: "Draw text on the image. Position is a percentage of width and height; the text is centered vertically on it.",
			InputSchema: imageSchema(map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to draw",
				},
				"font_family": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"sans", "mono"},
					"default": "sans",
				},
				"font_style": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"normal", "bold", "italic", "bold italic"},
					"default": "bold",
				},
				"font_size": number("Font size in pixels", 30),
				"color": map[string]interface{}{
					"type":        "string",
					"description": "Text color as hex (#rgb, #rrggbb or #rrggbbaa)",
					"default":     "#ffffff",
				},
				"text_align": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"left", "center", "right"},
					"default": "center",
				},
				"x": number("Horizontal position, 0 to 100 percent", 50),
				"y": number("Vertical position, 0 to 100 percent", 50),
				"effects": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"shadow":          map[string]interface{}{"type": "boolean", "default": true},
						"outline":         map[string]interface{}{"type": "boolean", "default": true},
						"outline_color":   map[string]interface{}{"type": "string", "default": "#000000"},
						"outline_width":   map[string]interface{}{"type": "number", "default": 2},
						"highlight":       map[string]interface{}{"type": "boolean", "default": false},
						"highlight_color": map[string]interface{}{"type": "string", "default": "#ffff00"},
					},
				},
			}, "text"),
		},
		{
			Name:        "image_watermark",
			Description: "Add a text or image watermark at a corner, edge center or the center. Position auto picks the corner that overlaps detected text the least.",
			InputSchema: imageSchema(map[string]interface{}{
				"type": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"text", "image"},
					"default": "text",
				},
				"position": map[string]interface{}{
					"type": "string",
					"enum": []string{
						"topLeft", "topCenter", "topRight",
						"centerLeft", "center", "centerRight",
						"bottomLeft", "bottomCenter", "bottomRight", "auto",
					},
					"default": "bottomRight",
				},
				"opacity": number("Opacity, 0 to 100", 70),
				"padding": number("Distance from the edge in pixels", 20),
				"text": map[string]interface{}{
					"type":    "string",
					"default": "© Copyright",
				},
				"text_font": map[string]interface{}{
					"type":    "string",
					"enum":    []string{"sans", "mono"},
					"default": "sans",
				},
				"text_style": map[string]interface{}{
					"type":    "string",
					"default": "bold",
				},
				"text_size": number("Text size in pixels", 24),
				"text_color": map[string]interface{}{
					"type":    "string",
					"default": "#ffffff",
				},
				"image_path": map[string]interface{}{
					"type":        "string",
					"description": "Watermark image file, required for type image",
				},
				"image_size": number("Longer side of the image mark as a percentage of the smaller canvas side", 20),
			}),
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
