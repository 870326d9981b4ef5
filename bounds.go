package viewport

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyInput is returned when bounds are requested for zero points.
var ErrEmptyInput = errors.New("empty input")

// A Point is a longitude and latitude in decimal degrees.
type Point struct {
	Lon float64
	Lat float64
}

// A BoundingBox is a geographic bounding box. Boxes crossing the antimeridian
// are not supported.
type BoundingBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

// A Range is an inclusive range of degrees.
type Range struct {
	Min float64
	Max float64
}

// Bounds returns the bounding box of points.
func Bounds(points []Point) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrEmptyInput
	}
	b := BoundingBox{
		West:  points[0].Lon,
		South: points[0].Lat,
		East:  points[0].Lon,
		North: points[0].Lat,
	}
	for _, point := range points[1:] {
		b.West = min(b.West, point.Lon)
		b.South = min(b.South, point.Lat)
		b.East = max(b.East, point.Lon)
		b.North = max(b.North, point.Lat)
	}
	return b, nil
}

// BoundsFunc returns the bounding box of values, using pointFunc to extract
// the Point of each value.
func BoundsFunc[T any](values []T, pointFunc func(T) Point) (BoundingBox, error) {
	points := make([]Point, len(values))
	for i, value := range values {
		points[i] = pointFunc(value)
	}
	return Bounds(points)
}

// WestmostLongitude returns the smallest longitude in points.
func WestmostLongitude(points []Point) (float64, error) {
	return extremum(points, pointLon, slices.Min[[]float64, float64])
}

// EastmostLongitude returns the largest longitude in points.
func EastmostLongitude(points []Point) (float64, error) {
	return extremum(points, pointLon, slices.Max[[]float64, float64])
}

// SouthmostLatitude returns the smallest latitude in points.
func SouthmostLatitude(points []Point) (float64, error) {
	return extremum(points, pointLat, slices.Min[[]float64, float64])
}

// NorthmostLatitude returns the largest latitude in points.
func NorthmostLatitude(points []Point) (float64, error) {
	return extremum(points, pointLat, slices.Max[[]float64, float64])
}

func pointLon(p Point) float64 { return p.Lon }
func pointLat(p Point) float64 { return p.Lat }

func extremum(points []Point, coordFunc func(Point) float64, reduceFunc func([]float64) float64) (float64, error) {
	if len(points) == 0 {
		return 0, ErrEmptyInput
	}
	coords := make([]float64, len(points))
	for i, point := range points {
		coords[i] = coordFunc(point)
	}
	return reduceFunc(coords), nil
}

// Center returns the center of b in degrees. It is the arithmetic mean of the
// bounds, not the projected center.
func (b BoundingBox) Center() Point {
	return Point{
		Lon: (b.West + b.East) / 2,
		Lat: (b.South + b.North) / 2,
	}
}

// Contains returns if point lies within b, borders included.
func (b BoundingBox) Contains(point Point) bool {
	return b.West <= point.Lon && point.Lon <= b.East &&
		b.South <= point.Lat && point.Lat <= b.North
}

// ContainsBounds returns if other lies entirely within b.
func (b BoundingBox) ContainsBounds(other BoundingBox) bool {
	return b.West <= other.West && other.East <= b.East &&
		b.South <= other.South && other.North <= b.North
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%v %v %v %v]", b.West, b.South, b.East, b.North)
}

// Within returns the range of width 2*deviation centered on center.
//
//	Within(15.5, 0.5) // {Min: 15, Max: 16}
func Within(center, deviation float64) Range {
	return Range{
		Min: center - deviation,
		Max: center + deviation,
	}
}

// Contains returns if value lies within r.
func (r Range) Contains(value float64) bool {
	return r.Min <= value && value <= r.Max
}

// FilterPoints returns the points whose longitude lies within lonRange and
// whose latitude lies within latRange.
func FilterPoints(points []Point, lonRange, latRange Range) []Point {
	var filtered []Point
	for _, point := range points {
		if lonRange.Contains(point.Lon) && latRange.Contains(point.Lat) {
			filtered = append(filtered, point)
		}
	}
	return filtered
}
