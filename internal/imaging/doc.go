// Package imaging is the piccy image-transform engine.
//
// It decodes raw encoded image bytes (PNG, JPEG, GIF and WebP, including
// animated GIF and WebP), inspects them, applies pixel-level transforms, runs
// per-frame animation operations, composes several images into one, and
// re-encodes the result. Every operation takes and returns an Image value:
// an immutable encoded byte buffer whose format is sniffed from its content.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Regions are given as a
// top-left corner plus a width and height.
//
// # Operations
//
// Inspection:
//   - Info: dimensions, frame count and mean frame delay
//   - Dimensions: header-only width and height
//
// Transforms (single image, result is PNG):
//   - Crop, CropRegion, Resize, Rotate, Flip, Grayscale, Invert, ColorMask
//
// Animation (GIF or WebP with more than one frame):
//   - Split: one PNG per frame
//   - Reverse, Retime: result is a looping GIF
//
// Composition:
//   - Merge: spatial concatenation, result is PNG
//   - MergeGIF: temporal concatenation, result is a looping GIF
//   - Mirage: hides one image in the alpha channel of another
//
// # Thread Safety
//
// Image values are read-only and may be shared freely between goroutines.
// Operations hold no package state and can run concurrently. The Store type
// is safe for concurrent use.
//
// # Concurrency
//
// Multi-image operations (Merge, MergeGIF, Split, EncodeBatch) fan their
// per-image work out over a bounded set of goroutines and collect results in
// input order. The first failure aborts the batch and no partial result is
// returned. WithWorkers caps the number of goroutines; the default is
// runtime.GOMAXPROCS(0).
//
// # Error Handling
//
// Every error is an *Error that wraps one of ErrDecode, ErrEncode, ErrBounds,
// ErrAnimation, ErrIO or ErrInput, so callers can branch with errors.Is.
// The underlying cause carries a stack trace, printed with %+v.
package imaging
