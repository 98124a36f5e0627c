// Package server implements the MCP (Model Context Protocol) server for the
// piccy image transforms.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: logrus on stderr
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Images and metadata:
//   - image_load: Load from a path or base64 text, returning an image id
//   - image_info: Dimensions, frame count and average frame duration
//   - image_encode: Encode as base64 PNG, JPEG, WebP or GIF
//   - image_save: Write to disk
//   - image_release: Drop an image id
//
// Transforms:
//   - image_crop, image_crop_region
//   - image_resize, image_rotate, image_flip
//   - image_grayscale, image_invert, image_color_mask
//
// Animation:
//   - image_split, image_reverse, image_retime
//
// Composition:
//   - image_merge, image_merge_gif, image_mirage
//
// # Image Store
//
// Tools exchange images by id. Every produced image is registered in an
// in-memory store and described by {id, width, height, format, size_bytes}.
// Images loaded from a path are memoised so repeat loads share an id. The
// store lives as long as the server process; image_release frees entries.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments or unknown tools, -32000 for tool failures
//   - message: Human-readable error description
//   - data: {"error": ..., "kind": ...} where kind is one of decode, encode,
//     bounds, animation, io, input or internal
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.New(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
