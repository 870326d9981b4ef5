package viewport

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	_ "github.com/google/tiff/geotiff"
)

// geoTIFFEdgeSegments is the number of segments each edge of a GeoTIFF extent
// is split into when reprojecting it.
const geoTIFFEdgeSegments = 8

// A GeoTIFFExtent is the extent of a GeoTIFF raster in its own CRS.
type GeoTIFFExtent struct {
	CRS    string
	Bounds BoundingBox // In CRS units, not necessarily degrees.
	Width  int
	Height int
}

// A geoTIFFExtentIFD is a struct into which github.com/google/tiff can
// unmarshal the georeferencing fields of an IFD.
type geoTIFFExtentIFD struct {
	ImageWidth         uint32    `tiff:"field,tag=256"`
	ImageLength        uint32    `tiff:"field,tag=257"`
	ModelPixelScaleTag []float64 `tiff:"field,tag=33550"`
	ModelTiepointTag   []float64 `tiff:"field,tag=33922"`
	GeoKeyDirectoryTag []uint16  `tiff:"field,tag=34735"`
	GeoDoubleParamsTag []float64 `tiff:"field,tag=34736"`
	GeoASCIIParamsTag  string    `tiff:"field,tag=34737"`
}

// ReadGeoTIFFExtent reads the extent of the single-image GeoTIFF filename in
// fsys.
func ReadGeoTIFFExtent(fsys fs.FS, filename string) (*GeoTIFFExtent, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	osFile, ok := file.(*os.File)
	if !ok {
		return nil, errors.ErrUnsupported
	}

	tiffTIFF, err := tiff.Parse(osFile, tiff.GetTagSpace("GeoTIFF"), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(tiffTIFF.IFDs()) != 1 {
		return nil, fmt.Errorf("%s: found %d IFDs, expected 1", filename, len(tiffTIFF.IFDs()))
	}

	var ifd geoTIFFExtentIFD
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &ifd); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	extent, err := ifd.extent()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return extent, nil
}

func (ifd *geoTIFFExtentIFD) extent() (*GeoTIFFExtent, error) {
	if len(ifd.ModelPixelScaleTag) != 3 || len(ifd.ModelTiepointTag) != 6 {
		return nil, errors.ErrUnsupported
	}
	geoKeys, err := ParseGeoKeys(ifd.GeoKeyDirectoryTag, ifd.GeoDoubleParamsTag, []byte(ifd.GeoASCIIParamsTag))
	if err != nil {
		return nil, err
	}
	crs, err := geoKeys.CRS()
	if err != nil {
		return nil, err
	}

	width, height := int(ifd.ImageWidth), int(ifd.ImageLength)
	scaleX, scaleY := ifd.ModelPixelScaleTag[0], ifd.ModelPixelScaleTag[1]
	i, j := ifd.ModelTiepointTag[0], ifd.ModelTiepointTag[1]
	x, y := ifd.ModelTiepointTag[3], ifd.ModelTiepointTag[4]
	// Point rasters tie pixel centers, not pixel corners.
	if geoKeys.Params[GeoKeyGTRasterType] == RasterPixelIsPoint {
		i += 0.5
		j += 0.5
	}
	west := x - i*scaleX
	north := y + j*scaleY
	return &GeoTIFFExtent{
		CRS: crs,
		Bounds: BoundingBox{
			West:  west,
			South: north - float64(height)*scaleY,
			East:  west + float64(width)*scaleX,
			North: north,
		},
		Width:  width,
		Height: height,
	}, nil
}

// Outline returns points along the edges of e's bounds, in e's CRS, suitable
// for reprojection.
func (e *GeoTIFFExtent) Outline() [][]float64 {
	b := e.Bounds
	coords := make([][]float64, 0, 4*geoTIFFEdgeSegments)
	for step := range geoTIFFEdgeSegments {
		f := float64(step) / geoTIFFEdgeSegments
		x := b.West + f*(b.East-b.West)
		y := b.South + f*(b.North-b.South)
		coords = append(coords,
			[]float64{x, b.North},
			[]float64{b.East, y + (b.North-b.South)/geoTIFFEdgeSegments},
			[]float64{x + (b.East-b.West)/geoTIFFEdgeSegments, b.South},
			[]float64{b.West, y},
		)
	}
	return coords
}

// GeoTIFFBounds returns the bounding box in degrees of extent.
func (t *Transformer) GeoTIFFBounds(ctx context.Context, extent *GeoTIFFExtent) (BoundingBox, error) {
	return t.Bounds(ctx, extent.CRS, extent.Outline())
}
