// Package imaging provides the raster, sampling and rendering core of the
// pixel picker.
//
// It covers decoding images into an immutable Raster, mapping between display
// and image coordinates, exact single-pixel and block sampling, the magnifier
// renderer and region crop previews. Region selection and export live in
// their own packages and build on the types defined here.
//
// # Coordinate System
//
// Image-space coordinates are 0-based integer pixel indices with the origin at
// the top-left corner, X increasing rightward and Y increasing downward.
// Display space is the coordinate system pointer events arrive in; it may be
// scaled independently along X and Y relative to the raster (see Mapper).
//
// # Degraded Input
//
// Sampling and rendering never fail on out-of-range coordinates:
//   - SamplePixel clamps to the nearest edge pixel
//   - SampleBlock clamps the requested rectangle to the raster
//   - RenderMagnifier repeats edge pixels and paints black where nothing was read
//   - Mapper returns (0,0) until both raster and display size are known
//
// The only precondition is an attached raster. Functions that need one
// report its absence with a false/nil result rather than an error.
//
// # Color Representation
//
// PixelColor carries the 8-bit components plus two uppercase hex strings:
// "#RRGGBB" and the channel-reversed "#BBGGRR" consumed by BGR tooling.
// Alpha is ignored when sampling.
//
// # Thread Safety
//
// Raster is read-only after construction and ImageCache is safe for
// concurrent use. Everything else is stateless.
package imaging
