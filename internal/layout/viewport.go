package layout

// Viewport is where the logical canvas sits on a host surface, in the host's
// device units (pixels, terminal cells).
type Viewport struct {
	OriginX float64
	OriginY float64
	Width   float64
	Height  float64
}

// ToLogical maps a device position into the logical space of g:
// logical = (device - origin) / (size / logicalSize), per axis.
// A zero-sized axis maps to 0.
func (v Viewport) ToLogical(device Point, g Geometry) Point {
	return Point{
		X: scaleAxis(device.X, v.OriginX, v.Width, g.CanvasWidth),
		Y: scaleAxis(device.Y, v.OriginY, v.Height, g.CanvasHeight),
	}
}

// scaleAxis applies the device-to-logical mapping on one axis.
func scaleAxis(device, origin, size, logicalSize float64) float64 {
	if size == 0 || logicalSize == 0 {
		return 0
	}
	return (device - origin) / (size / logicalSize)
}
