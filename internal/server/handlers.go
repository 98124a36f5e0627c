package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/piccy/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// argError marks a malformed or missing tool argument. It is reported as
// JSON-RPC "Invalid params" rather than a tool failure.
type argError struct {
	err error
}

func (e *argError) Error() string { return e.err.Error() }
func (e *argError) Unwrap() error { return e.err }

func badArgs(format string, args ...interface{}) error {
	return &argError{err: fmt.Errorf(format, args...)}
}

// decodeArgs unmarshals tool arguments; an absent argument object is treated
// as empty.
func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &argError{err: err}
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Invalid arguments and unknown tools return code -32602. Tool execution
// errors return code -32000 with an ErrorData payload.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	entry := log.WithFields(log.Fields{
		"tool":     params.Name,
		"duration": time.Since(start),
	})

	if err != nil {
		var ae *argError
		if errors.As(err, &ae) {
			entry.WithError(err).Warn("invalid tool arguments")
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		kind := imaging.KindName(err)
		entry.WithField("kind", kind).WithError(err).Warn("tool failed")
		entry.Debugf("%+v", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ErrorData{Error: err.Error(), Kind: kind})
	}
	entry.Debug("tool call")

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
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves image handles through the store
//  4. Calls the appropriate imaging function
//  5. Registers any produced image and returns its description
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Images and metadata
	case "image_load":
		return s.handleImageLoad(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_encode":
		return s.handleImageEncode(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_release":
		return s.handleImageRelease(args)

	// Transforms
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_region":
		return s.handleImageCropRegion(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_grayscale":
		return s.handleSimpleTransform(args, imaging.Grayscale)
	case "image_invert":
		return s.handleSimpleTransform(args, imaging.Invert)
	case "image_color_mask":
		return s.handleImageColorMask(args)

	// Animation
	case "image_split":
		return s.handleImageSplit(args)
	case "image_reverse":
		return s.handleSimpleTransform(args, imaging.Reverse)
	case "image_retime":
		return s.handleImageRetime(args)

	// Composition
	case "image_merge":
		return s.handleImageMerge(args)
	case "image_merge_gif":
		return s.handleImageMergeGIF(args)
	case "image_mirage":
		return s.handleImageMirage(args)

	default:
		return nil, badArgs("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageResult describes an image held by the server.
type ImageResult struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int    `json:"size_bytes"`
}

// describe builds the result for an image already registered under id.
func (s *Server) describe(id string, img imaging.Image) (*ImageResult, error) {
	codec, err := img.Codec()
	if err != nil {
		return nil, err
	}
	dims, err := imaging.Dimensions(img)
	if err != nil {
		return nil, err
	}
	return &ImageResult{
		ID:        id,
		Width:     dims.Width,
		Height:    dims.Height,
		Format:    string(codec),
		SizeBytes: img.Len(),
	}, nil
}

// register stores a freshly produced image and describes it.
func (s *Server) register(img imaging.Image) (*ImageResult, error) {
	return s.describe(s.store.Put(img), img)
}

// lookup resolves a required image handle.
func (s *Server) lookup(id string) (imaging.Image, error) {
	if id == "" {
		return imaging.Image{}, badArgs("missing image id")
	}
	return s.store.Get(id)
}

func (s *Server) lookupAll(ids []string) ([]imaging.Image, error) {
	images := make([]imaging.Image, len(ids))
	for i, id := range ids {
		img, err := s.lookup(id)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	return images, nil
}

// outputFormat picks the requested format, falling back to the configured one.
func (s *Server) outputFormat(name string) (imaging.OutputFormat, error) {
	if name == "" {
		return s.cfg.Format(), nil
	}
	f, err := imaging.ParseOutputFormat(name)
	if err != nil {
		return imaging.PNG, &argError{err: err}
	}
	return f, nil
}

// === Image and Metadata Handlers ===

type imageIDArgs struct {
	ID string `json:"id"`
}

type imageLoadArgs struct {
	Path   string `json:"path"`
	Base64 string `json:"base64"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	switch {
	case a.Path != "" && a.Base64 != "":
		return nil, badArgs("give either path or base64, not both")
	case a.Path != "":
		id, img, err := s.store.LoadFile(a.Path)
		if err != nil {
			return nil, err
		}
		return s.describe(id, img)
	case a.Base64 != "":
		img, err := imaging.LoadBase64(a.Base64)
		if err != nil {
			return nil, err
		}
		return s.register(img)
	default:
		return nil, badArgs("one of path or base64 is required")
	}
}

// InfoResult is the image_info result.
type InfoResult struct {
	ID     string `json:"id"`
	Format string `json:"format"`
	*imaging.ImageInfo
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	info, err := imaging.Info(img)
	if err != nil {
		return nil, err
	}
	codec, err := img.Codec()
	if err != nil {
		return nil, err
	}
	return &InfoResult{ID: a.ID, Format: string(codec), ImageInfo: info}, nil
}

type imageEncodeArgs struct {
	ID     string `json:"id"`
	Format string `json:"format"`
}

// EncodeResult carries encoded image bytes back to the client.
type EncodeResult struct {
	ID          string `json:"id"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleImageEncode(args json.RawMessage) (interface{}, error) {
	var a imageEncodeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	format, err := s.outputFormat(a.Format)
	if err != nil {
		return nil, err
	}

	data, err := imaging.Encode(img, format)
	if err != nil {
		return nil, err
	}

	return &EncodeResult{
		ID:          a.ID,
		MimeType:    format.MimeType(),
		SizeBytes:   len(data),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

type imageSaveArgs struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Format string `json:"format"`
}

// SaveResult reports where an image was written.
type SaveResult struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Format    string `json:"format"`
	SizeBytes int    `json:"size_bytes"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}

	name := a.Format
	if name == "" && a.Path != "" {
		if _, perr := imaging.ParseOutputFormat(filepath.Ext(a.Path)); perr == nil {
			name = filepath.Ext(a.Path)
		}
	}
	format, err := s.outputFormat(name)
	if err != nil {
		return nil, err
	}

	path := a.Path
	if path == "" {
		if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		path = s.outputPath(format)
	}

	if err := imaging.Save(img, path, format); err != nil {
		return nil, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	log.WithFields(log.Fields{"id": a.ID, "path": path}).Info("image saved")
	return &SaveResult{ID: a.ID, Path: path, Format: format.String(), SizeBytes: int(st.Size())}, nil
}

// outputPath names a new file in the output directory after the current time
// in nanoseconds, stepping past names that are already taken.
func (s *Server) outputPath(format imaging.OutputFormat) string {
	stamp := s.now().UnixNano()
	for {
		path := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%d%s", stamp, format.Extension()))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		stamp++
	}
}

func (s *Server) handleImageRelease(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.lookup(a.ID); err != nil {
		return nil, err
	}
	s.store.Evict(a.ID)
	return map[string]interface{}{"id": a.ID, "released": true}, nil
}

// === Transform Handlers ===

// handleSimpleTransform runs a one-image operation that takes no parameters.
func (s *Server) handleSimpleTransform(args json.RawMessage, op func(imaging.Image) (imaging.Image, error)) (interface{}, error) {
	var a imageIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := op(img)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageCropArgs struct {
	ID     string `json:"id"`
	Left   int    `json:"left"`
	Top    int    `json:"top"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}

	// Width and height default to the rest of the image past (left, top).
	if a.Width == nil || a.Height == nil {
		dims, err := imaging.Dimensions(img)
		if err != nil {
			return nil, err
		}
		if a.Width == nil {
			w := dims.Width - a.Left
			a.Width = &w
		}
		if a.Height == nil {
			h := dims.Height - a.Top
			a.Height = &h
		}
	}

	out, err := imaging.Crop(img, a.Left, a.Top, *a.Width, *a.Height)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageCropRegionArgs struct {
	ID     string `json:"id"`
	Region string `json:"region"`
}

func (s *Server) handleImageCropRegion(args json.RawMessage) (interface{}, error) {
	var a imageCropRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.CropRegion(img, a.Region)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageResizeArgs struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Resize(img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageRotateArgs struct {
	ID      string  `json:"id"`
	Degrees float64 `json:"degrees"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Rotate(img, a.Degrees)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageFlipArgs struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	mode, err := imaging.ParseFlipMode(a.Mode)
	if err != nil {
		return nil, &argError{err: err}
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Flip(img, mode)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageColorMaskArgs struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	R     *int   `json:"r"`
	G     *int   `json:"g"`
	B     *int   `json:"b"`
}

// tint resolves the mask color from a hex string or r/g/b components.
func (a *imageColorMaskArgs) tint() (r, g, b uint8, err error) {
	if a.Color != "" {
		hex := strings.TrimSpace(a.Color)
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return 0, 0, 0, badArgs("invalid color %q: %v", a.Color, err)
		}
		r, g, b = c.RGB255()
		return r, g, b, nil
	}
	if a.R == nil || a.G == nil || a.B == nil {
		return 0, 0, 0, badArgs("give color as hex or all of r, g and b")
	}
	for _, v := range []int{*a.R, *a.G, *a.B} {
		if v < 0 || v > 255 {
			return 0, 0, 0, badArgs("color component %d outside 0-255", v)
		}
	}
	return uint8(*a.R), uint8(*a.G), uint8(*a.B), nil
}

func (s *Server) handleImageColorMask(args json.RawMessage) (interface{}, error) {
	var a imageColorMaskArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	r, g, b, err := a.tint()
	if err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.ColorMask(img, r, g, b)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

// === Animation Handlers ===

// SplitResult lists the frames produced by image_split.
type SplitResult struct {
	ID     string         `json:"id"`
	Frames []*ImageResult `json:"frames"`
}

func (s *Server) handleImageSplit(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	parts, err := imaging.Split(img, s.opts...)
	if err != nil {
		return nil, err
	}

	result := &SplitResult{ID: a.ID, Frames: make([]*ImageResult, 0, len(parts))}
	for _, part := range parts {
		desc, err := s.register(part)
		if err != nil {
			return nil, err
		}
		result.Frames = append(result.Frames, desc)
	}
	return result, nil
}

type imageRetimeArgs struct {
	ID      string `json:"id"`
	DelayMs *int   `json:"delay_ms"`
}

func (s *Server) handleImageRetime(args json.RawMessage) (interface{}, error) {
	var a imageRetimeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.DelayMs == nil {
		return nil, badArgs("delay_ms is required")
	}
	if *a.DelayMs < 0 {
		return nil, badArgs("delay_ms must not be negative, got %d", *a.DelayMs)
	}
	img, err := s.lookup(a.ID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Retime(img, time.Duration(*a.DelayMs)*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

// === Composition Handlers ===

type imageMergeArgs struct {
	IDs  []string `json:"ids"`
	Mode string   `json:"mode"`
}

func (s *Server) handleImageMerge(args json.RawMessage) (interface{}, error) {
	var a imageMergeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	mode, err := imaging.ParseMergeMode(a.Mode)
	if err != nil {
		return nil, &argError{err: err}
	}
	images, err := s.lookupAll(a.IDs)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Merge(images, mode, s.opts...)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageMergeGIFArgs struct {
	IDs     []string `json:"ids"`
	DelayMs *int     `json:"delay_ms"`
}

func (s *Server) handleImageMergeGIF(args json.RawMessage) (interface{}, error) {
	var a imageMergeGIFArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	delay := s.cfg.FrameDelay()
	if a.DelayMs != nil {
		if *a.DelayMs < 0 {
			return nil, badArgs("delay_ms must not be negative, got %d", *a.DelayMs)
		}
		delay = time.Duration(*a.DelayMs) * time.Millisecond
	}
	images, err := s.lookupAll(a.IDs)
	if err != nil {
		return nil, err
	}
	out, err := imaging.MergeGIF(images, delay, s.opts...)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}

type imageMirageArgs struct {
	VisibleID string `json:"visible_id"`
	HiddenID  string `json:"hidden_id"`
}

func (s *Server) handleImageMirage(args json.RawMessage) (interface{}, error) {
	var a imageMirageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	visible, err := s.lookup(a.VisibleID)
	if err != nil {
		return nil, err
	}
	hidden, err := s.lookup(a.HiddenID)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Mirage(visible, hidden)
	if err != nil {
		return nil, err
	}
	return s.register(out)
}
