package viewport

import "math"

// TileSize is the size of one tile in pixels. The number of tiles across the
// world doubles with every zoom level.
const TileSize = 256

// MaxZoom is the largest zoom level supported. World pixel coordinates at
// this zoom still fit comfortably in an int.
const MaxZoom = 30

const (
	PixelsPerRadian  = TileSize / (2 * math.Pi) // 40.74366543152521
	PixelsPerDegree  = TileSize / 360.0         // 0.7111111111111111
	RadiansPerDegree = math.Pi / 180            // 0.017453292519943295
	DegreesPerRadian = 180 / math.Pi            // 57.29577951308232
)

// A Pixel is a position on the world pixel grid at a specific zoom level.
// The grid is TileSize*2^zoom pixels across, with Y increasing southwards.
type Pixel struct {
	X int
	Y int
}

// OriginPixel is the pixel at lon 0, lat 0 at zoom 0.
var OriginPixel = Pixel{X: TileSize / 2, Y: TileSize / 2}

// TilesCountAt returns the number of tiles across the world at zoom.
func TilesCountAt(zoom int) int {
	return 1 << zoom
}

// LonToWorldRad converts a longitude in degrees to radians.
func LonToWorldRad(lonDeg float64) float64 {
	return lonDeg * RadiansPerDegree
}

// LatToWorldRad converts a latitude in degrees to radians.
func LatToWorldRad(latDeg float64) float64 {
	return latDeg * RadiansPerDegree
}

// LatToWorldRadScaled converts a latitude in degrees to the Mercator scaled
// value ln(tan(π/4 + φ/2)). It tends to ±Inf as latDeg tends to ±90.
func LatToWorldRadScaled(latDeg float64) float64 {
	latRad := LatToWorldRad(latDeg)
	return math.Log(math.Tan(math.Pi/4 + latRad/2))
}

// InverseGudermannian returns the latitude in radians whose Mercator scaled
// value is x, i.e. the inverse of [LatToWorldRadScaled] without the degree
// conversion.
func InverseGudermannian(x float64) float64 {
	return 2*math.Atan(math.Exp(x)) - math.Pi/2
}

// LonLatToWorldPixel returns the world pixel coordinates of lonDeg, latDeg at
// zoom 0, where the whole world fits on one TileSize×TileSize tile.
//
//	LonLatToWorldPixel(0, 0) // 128, 128
//	LonLatToWorldPixel(6.916236877441406, 50.95788608634216) // 132.918212890625, 85.7506103515625
func LonLatToWorldPixel(lonDeg, latDeg float64) (wx, wy float64) {
	wx = float64(OriginPixel.X) + PixelsPerRadian*LonToWorldRad(lonDeg)
	wy = float64(OriginPixel.Y) - PixelsPerRadian*LatToWorldRadScaled(latDeg)
	return wx, wy
}

// WorldPixelToLonLat is the inverse of [LonLatToWorldPixel].
func WorldPixelToLonLat(wx, wy float64) (lonDeg, latDeg float64) {
	lonDeg = (wx - float64(OriginPixel.X)) / PixelsPerDegree
	latDeg = DegreesPerRadian * InverseGudermannian((wy-float64(OriginPixel.Y))/-PixelsPerRadian)
	return lonDeg, latDeg
}

// PixelCoord returns the pixel at lonDeg, latDeg at zoom. Coordinates are
// truncated, not rounded.
//
//	PixelCoord(6.916236877441406, 50.95788608634216, 0)  // {132, 85}
//	PixelCoord(6.916236877441406, 50.95788608634216, 15) // {4355464, 2809876}
func PixelCoord(lonDeg, latDeg float64, zoom int) Pixel {
	wx, wy := LonLatToWorldPixel(lonDeg, latDeg)
	tilesCount := float64(TilesCountAt(zoom))
	return Pixel{
		X: int(wx * tilesCount),
		Y: int(wy * tilesCount),
	}
}

// WorldPixelAtZoom scales pixel at zoom back to world pixel coordinates at
// zoom 0.
func WorldPixelAtZoom(pixel Pixel, zoom int) (wx, wy float64) {
	tilesCount := float64(TilesCountAt(zoom))
	return float64(pixel.X) / tilesCount, float64(pixel.Y) / tilesCount
}

// PixelToLonLat returns the longitude and latitude in degrees of pixel at
// zoom. It is the inverse of [PixelCoord], up to truncation.
//
//	PixelToLonLat(Pixel{X: 4355464, Y: 2809876}, 15) // 6.916236877441406, 50.95788608634216
func PixelToLonLat(pixel Pixel, zoom int) (lonDeg, latDeg float64) {
	return WorldPixelToLonLat(WorldPixelAtZoom(pixel, zoom))
}
