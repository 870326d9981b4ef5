// Package viewport calculates the center, zoom level, and bounds of a
// spherical Mercator map that fits a set of points into a viewport of a given
// size in pixels.
//
// Inspired by https://github.com/mapbox/geo-viewport,
// https://github.com/mapbox/node-sphericalmercator, and the
// simple_mercator_location Ruby gem.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMinZoom = 0
	DefaultMaxZoom = 20
)

var (
	ErrDegenerateBounds    = errors.New("degenerate bounds")
	ErrInvalidDimensions   = errors.New("invalid dimensions")
	ErrInvalidZoomRange    = errors.New("invalid zoom range")
	ErrLatitudeOutOfRange  = errors.New("latitude out of range")
	ErrLongitudeOutOfRange = errors.New("longitude out of range")
)

// Dimensions are the size of a viewport in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// A Viewport is a map view of fixed dimensions that contains a bounding box.
type Viewport struct {
	dimensions Dimensions
	center     Point
	zoom       int
	bounds     BoundingBox
}

// An Option sets an option on a viewport calculation.
type Option func(*options)

type options struct {
	minZoom int
	maxZoom int
}

// WithMinZoom sets the minimum zoom level. The default is 0.
func WithMinZoom(minZoom int) Option {
	return func(o *options) {
		o.minZoom = minZoom
	}
}

// WithMaxZoom sets the maximum zoom level. The default is 20.
func WithMaxZoom(maxZoom int) Option {
	return func(o *options) {
		o.maxZoom = maxZoom
	}
}

// New returns the viewport of the given dimensions centered on bounds at the
// largest integer zoom level at which bounds fit entirely within it.
//
// The returned viewport's bounds are recalculated to exactly frame dimensions
// at its zoom, so they contain the original bounds and usually extend beyond
// them on one axis.
func New(bounds BoundingBox, dimensions Dimensions, opts ...Option) (*Viewport, error) {
	return newViewport(bounds, dimensions, newOptions(opts...))
}

func newOptions(opts ...Option) options {
	o := options{
		minZoom: DefaultMinZoom,
		maxZoom: DefaultMaxZoom,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newViewport(bounds BoundingBox, dimensions Dimensions, o options) (*Viewport, error) {
	if err := validate(bounds, dimensions, o); err != nil {
		viewportErrors.Inc()
		return nil, err
	}

	viewportCalculations.Inc()
	v := &Viewport{
		dimensions: dimensions,
		center:     bounds.Center(),
	}
	v.zoom = fitZoom(bounds, dimensions, o.minZoom, o.maxZoom)
	v.bounds = v.frame()
	return v, nil
}

func validate(bounds BoundingBox, dimensions Dimensions, o options) error {
	switch {
	case dimensions.Width <= 0 || dimensions.Height <= 0:
		return fmt.Errorf("%dx%d: %w", dimensions.Width, dimensions.Height, ErrInvalidDimensions)
	case o.minZoom < 0 || o.maxZoom > MaxZoom || o.minZoom > o.maxZoom:
		return fmt.Errorf("%d-%d: %w", o.minZoom, o.maxZoom, ErrInvalidZoomRange)
	case !isFinite(bounds.West) || !isFinite(bounds.South) || !isFinite(bounds.East) || !isFinite(bounds.North):
		return fmt.Errorf("%v: %w", bounds, ErrDegenerateBounds)
	case bounds.West > bounds.East || bounds.South > bounds.North:
		return fmt.Errorf("%v: %w", bounds, ErrDegenerateBounds)
	case bounds.South <= -90 || bounds.North >= 90:
		return fmt.Errorf("%v: %w", bounds, ErrLatitudeOutOfRange)
	case bounds.West < -180 || bounds.East > 180:
		return fmt.Errorf("%v: %w", bounds, ErrLongitudeOutOfRange)
	default:
		return nil
	}
}

// fitZoom returns the largest zoom in [minZoom, maxZoom] at which bounds fit
// in dimensions. Pixel extents are measured at maxZoom for precision.
func fitZoom(bounds BoundingBox, dimensions Dimensions, minZoom, maxZoom int) int {
	base := maxZoom
	bottomLeft := PixelCoord(bounds.West, bounds.South, base)
	topRight := PixelCoord(bounds.East, bounds.North, base)
	width := topRight.X - bottomLeft.X
	height := bottomLeft.Y - topRight.Y

	// A single point fits at any zoom.
	if width == 0 && height == 0 {
		return maxZoom
	}

	// A zero extent on one axis yields +Inf, leaving the other axis to
	// constrain the zoom.
	zoomX := float64(base) - math.Log2(float64(width)/float64(dimensions.Width))
	zoomY := float64(base) - math.Log2(float64(height)/float64(dimensions.Height))
	adjusted := math.Floor(min(zoomX, zoomY))

	switch {
	case adjusted < float64(minZoom):
		viewportZoomClamped.Inc()
		return minZoom
	case adjusted > float64(maxZoom):
		viewportZoomClamped.Inc()
		return maxZoom
	default:
		return int(adjusted)
	}
}

// frame returns the bounds of v's dimensions around v's center at v's zoom.
func (v *Viewport) frame() BoundingBox {
	center := PixelCoord(v.center.Lon, v.center.Lat, v.zoom)
	halfWidth, halfHeight := v.dimensions.Width/2, v.dimensions.Height/2
	topLeft := Pixel{X: center.X - halfWidth, Y: center.Y - halfHeight}
	bottomRight := Pixel{X: center.X + halfWidth, Y: center.Y + halfHeight}
	west, north := PixelToLonLat(topLeft, v.zoom)
	east, south := PixelToLonLat(bottomRight, v.zoom)
	return BoundingBox{
		West:  west,
		South: south,
		East:  east,
		North: north,
	}
}

// Dimensions returns v's dimensions in pixels.
func (v *Viewport) Dimensions() Dimensions {
	return v.dimensions
}

// Width returns v's width in pixels.
func (v *Viewport) Width() int {
	return v.dimensions.Width
}

// Height returns v's height in pixels.
func (v *Viewport) Height() int {
	return v.dimensions.Height
}

// Center returns the center of v.
func (v *Viewport) Center() Point {
	return v.center
}

// CenterLon returns the longitude of the center of v.
func (v *Viewport) CenterLon() float64 {
	return v.center.Lon
}

// CenterLat returns the latitude of the center of v.
func (v *Viewport) CenterLat() float64 {
	return v.center.Lat
}

// Zoom returns v's zoom level.
func (v *Viewport) Zoom() int {
	return v.zoom
}

// Bounds returns the bounds visible in v.
func (v *Viewport) Bounds() BoundingBox {
	return v.bounds
}

// Outline returns nine points outlining v: the corners and edge midpoints
// counterclockwise from the northwest corner, followed by the center.
func (v *Viewport) Outline() []Point {
	b, c := v.bounds, v.center
	return []Point{
		{Lon: b.West, Lat: b.North},
		{Lon: b.West, Lat: c.Lat},
		{Lon: b.West, Lat: b.South},
		{Lon: c.Lon, Lat: b.South},
		{Lon: b.East, Lat: b.South},
		{Lon: b.East, Lat: c.Lat},
		{Lon: b.East, Lat: b.North},
		{Lon: c.Lon, Lat: b.North},
		{Lon: c.Lon, Lat: c.Lat},
	}
}

func (v *Viewport) String() string {
	return fmt.Sprintf("center=[%v %v] zoom=%d dimensions=%dx%d bounds=%v",
		v.center.Lon, v.center.Lat, v.zoom, v.dimensions.Width, v.dimensions.Height, v.bounds)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
