package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/ironsheep/image-edit-mcp/internal/affine"
	"github.com/ironsheep/image-edit-mcp/internal/crop"
	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/filter"
	"github.com/ironsheep/image-edit-mcp/internal/glitch"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/overlay"
	"github.com/ironsheep/image-edit-mcp/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_filter").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.config.Debug() {
			log.Printf("%s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each editing handler:
//  1. Unmarshals arguments over the tool's defaults
//  2. Loads the source image from the cache
//  3. Renders the matching editor tool onto a fresh surface
//  4. Encodes the result, optionally writing it to output_path
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)

	// Tone Adjustments
	case "image_brightness_contrast":
		return s.handleImageBrightnessContrast(args)
	case "image_color_balance":
		return s.handleImageColorBalance(args)
	case "image_grayscale":
		return s.handleImageGrayscale(args)

	// Filters
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_filter_previews":
		return s.handleImageFilterPreviews(args)
	case "image_glitch":
		return s.handleImageGlitch(args)
	case "image_pixelize":
		return s.handleImagePixelize(args)

	// Color Analysis
	case "image_palette":
		return s.handleImagePalette(args)

	// Geometry
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Overlays
	case "image_text":
		return s.handleImageText(args)
	case "image_watermark":
		return s.handleImageWatermark(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Output Helpers ===

// outputArgs are accepted by every editing tool.
type outputArgs struct {
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
}

// imageOutput is the result of an editing tool.
type imageOutput struct {
	imaging.ImageResult
	OutputPath string `json:"output_path,omitempty"`
}

func requirePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// outputFormat resolves a per-call format name, falling back to the
// configured default.
func (s *Server) outputFormat(name string) (imaging.Format, error) {
	if name == "" {
		return s.config.Format, nil
	}
	return imaging.FormatFromName(name)
}

// render loads path, runs tool over it and encodes the result.
func (s *Server) render(path string, tool editor.Tool, out outputArgs) (*imageOutput, error) {
	if err := requirePath(path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	surface := imaging.NewSurface(0, 0)
	if _, err := editor.Run(tool, img, surface, false, s.config.Format); err != nil {
		return nil, err
	}
	return s.output(surface.Image(), out)
}

// output encodes img and writes it to out.OutputPath when one is given.
func (s *Server) output(img *image.NRGBA, out outputArgs) (*imageOutput, error) {
	f, err := s.outputFormat(out.Format)
	if err != nil {
		return nil, err
	}
	res, err := imaging.EncodeResult(img, f)
	if err != nil {
		return nil, err
	}

	result := &imageOutput{ImageResult: *res}
	if out.OutputPath != "" {
		if err := writeImage(out.OutputPath, img, f); err != nil {
			return nil, err
		}
		// A later call may edit the file just written.
		s.cache.Evict(out.OutputPath)
		result.OutputPath = out.OutputPath
	}
	if s.config.Debug() {
		log.Printf("encoded %dx%d %s (%d base64 bytes)", res.Width, res.Height, res.MimeType, len(res.ImageBase64))
	}
	return result, nil
}

func writeImage(path string, img image.Image, f imaging.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := imaging.Encode(file, img, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Tone Adjustment Handlers ===

type imageBrightnessContrastArgs struct {
	Path string `json:"path"`
	editor.BrightnessContrast
	outputArgs
}

func (s *Server) handleImageBrightnessContrast(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessContrastArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.render(a.Path, a.BrightnessContrast, a.outputArgs)
}

type imageColorBalanceArgs struct {
	Path string `json:"path"`
	editor.ColorBalance
	outputArgs
}

func (s *Server) handleImageColorBalance(args json.RawMessage) (interface{}, error) {
	var a imageColorBalanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.render(a.Path, a.ColorBalance, a.outputArgs)
}

type imageGrayscaleArgs struct {
	Path     string  `json:"path"`
	Darkness float64 `json:"darkness"`
	outputArgs
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a imageGrayscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.render(a.Path, editor.Grayscale{Darkness: a.Darkness}, a.outputArgs)
}

// === Filter Handlers ===

func filterNames() []string {
	kinds := filter.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

type imageFilterArgs struct {
	Path      string  `json:"path"`
	Filter    string  `json:"filter"`
	Intensity float64 `json:"intensity"`
	outputArgs
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	a := imageFilterArgs{Intensity: 1}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind := filter.ParseKind(a.Filter)
	if _, ok := filter.Describe(kind); !ok && kind != filter.None {
		return nil, fmt.Errorf("unknown filter %q", a.Filter)
	}
	return s.render(a.Path, editor.Filter{Kind: kind, Intensity: a.Intensity}, a.outputArgs)
}

type imageFilterPreviewsArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

type filterPreview struct {
	filter.Info
	Image *imaging.ImageResult `json:"image"`
}

func (s *Server) handleImageFilterPreviews(args json.RawMessage) (interface{}, error) {
	var a imageFilterPreviewsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	f, err := s.outputFormat(a.Format)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	thumbs := filter.Previews(img)
	previews := make([]filterPreview, 0, len(thumbs))
	for _, t := range thumbs {
		res, err := imaging.EncodeResult(t.Image, f)
		if err != nil {
			return nil, fmt.Errorf("%s preview: %w", t.Info.Kind, err)
		}
		previews = append(previews, filterPreview{Info: t.Info, Image: res})
	}
	return map[string]interface{}{
		"previews": previews,
		"count":    len(previews),
	}, nil
}

type imageGlitchArgs struct {
	Path string `json:"path"`
	glitch.Params
	Seed   *int64 `json:"seed,omitempty"`
	Random bool   `json:"random"`
	outputArgs
}

type glitchOutput struct {
	imageOutput
	Params glitch.Params `json:"params"`
}

func (s *Server) handleImageGlitch(args json.RawMessage) (interface{}, error) {
	var a imageGlitchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	engine := glitch.New()
	if a.Seed != nil {
		engine = glitch.NewWithSeed(*a.Seed)
	}
	params := a.Params.Clamped()
	if a.Random {
		params = engine.RandomPreset()
	}

	out, err := s.render(a.Path, editor.Glitch{Params: params, Engine: engine}, a.outputArgs)
	if err != nil {
		return nil, err
	}
	return &glitchOutput{imageOutput: *out, Params: params}, nil
}

type imagePixelizeArgs struct {
	Path      string `json:"path"`
	BlockSize int    `json:"block_size"`
	outputArgs
}

func (s *Server) handleImagePixelize(args json.RawMessage) (interface{}, error) {
	a := imagePixelizeArgs{BlockSize: 10}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.render(a.Path, editor.Pixelize{BlockSize: a.BlockSize}, a.outputArgs)
}

// === Color Analysis Handlers ===

type imagePaletteArgs struct {
	Path     string `json:"path"`
	Quantity int    `json:"quantity"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	a := imagePaletteArgs{Quantity: palette.DefaultQuantity}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	colors := palette.Extract(img, a.Quantity)
	return map[string]interface{}{
		"colors": colors,
		"count":  len(colors),
	}, nil
}

// === Geometry Handlers ===

type imageTransformArgs struct {
	Path       string   `json:"path"`
	Operations []string `json:"operations"`
	Rotation   float64  `json:"rotation"`
	outputArgs
}

type transformOutput struct {
	imageOutput
	Orientation affine.State `json:"orientation"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if len(a.Operations) == 0 && a.Rotation == 0 {
		return nil, fmt.Errorf("at least one operation or a rotation is required")
	}

	ops := make([]affine.Operation, len(a.Operations))
	for i, name := range a.Operations {
		op, err := affine.ParseOperation(name)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	session := editor.NewSession(editor.WithFormat(s.config.Format))
	session.Load(img)
	for _, op := range ops {
		if err := session.Transform(op); err != nil {
			return nil, err
		}
	}
	if a.Rotation != 0 {
		// Free rotation keeps the canvas size and is not part of the
		// orientation.
		session.SetTool(editor.Transform{Params: affine.Params{Rotation: a.Rotation}})
		if err := session.Commit(); err != nil {
			return nil, err
		}
	}

	out, err := s.output(session.Image(), a.outputArgs)
	if err != nil {
		return nil, err
	}
	return &transformOutput{imageOutput: *out, Orientation: session.Orientation()}, nil
}

type imageCropArgs struct {
	Path    string   `json:"path"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	Preview bool     `json:"preview"`
	outputArgs
}

type cropOutput struct {
	imageOutput
	Region crop.Region `json:"region"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	session := editor.NewSession(editor.WithFormat(s.config.Format))
	session.Load(img)
	ctrl := session.Crop()

	region := ctrl.Region()
	if a.X != nil {
		region.X = *a.X
	}
	if a.Y != nil {
		region.Y = *a.Y
	}
	if a.Width != nil {
		region.Width = *a.Width
	}
	if a.Height != nil {
		region.Height = *a.Height
	}
	ctrl.SetRegion(region)
	region = ctrl.Region()

	var out *imageOutput
	if a.Preview {
		out, err = s.render(a.Path, editor.CropOverlay{Controller: ctrl}, a.outputArgs)
	} else {
		session.ApplyCrop()
		out, err = s.output(session.Image(), a.outputArgs)
	}
	if err != nil {
		return nil, err
	}
	return &cropOutput{imageOutput: *out, Region: region}, nil
}

// === Overlay Handlers ===

type imageTextArgs struct {
	Path string `json:"path"`
	Text string `json:"text"`
	overlay.TextOptions
	outputArgs
}

func (s *Server) handleImageText(args json.RawMessage) (interface{}, error) {
	a := imageTextArgs{TextOptions: overlay.DefaultTextOptions()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.Family = overlay.ParseFamily(string(a.Family))
	a.Style = overlay.ParseStyle(string(a.Style))
	a.Align = overlay.ParseAlign(string(a.Align))

	return s.render(a.Path, editor.Text{Text: a.Text, Options: a.TextOptions}, a.outputArgs)
}

type imageWatermarkArgs struct {
	Path      string `json:"path"`
	ImagePath string `json:"image_path"`
	overlay.WatermarkOptions
	outputArgs
}

func (s *Server) handleImageWatermark(args json.RawMessage) (interface{}, error) {
	a := imageWatermarkArgs{WatermarkOptions: overlay.DefaultWatermarkOptions()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.Position = overlay.ParsePosition(string(a.Position))
	a.Family = overlay.ParseFamily(string(a.Family))
	a.Style = overlay.ParseStyle(string(a.Style))
	a.Align = overlay.ParseAlign(string(a.Align))

	if a.Kind == overlay.ImageMark {
		if a.ImagePath == "" {
			return nil, fmt.Errorf("image_path is required for image watermarks")
		}
		mark, err := s.cache.Load(a.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("watermark image: %w", err)
		}
		a.Image = mark
	}

	tool := editor.Watermark{Options: a.WatermarkOptions}
	if a.Position == overlay.Auto {
		tool.Locator = s.locator
	}
	return s.render(a.Path, tool, a.outputArgs)
}
