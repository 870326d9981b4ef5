package viewport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/maypok86/otter/v2"
	"github.com/twpayne/go-proj/v11"
)

// WGS84 is the CRS of Points.
const WGS84 = "epsg:4326"

// A Transformer transforms coordinates from arbitrary coordinate reference
// systems into Points. It is safe for concurrent use.
type Transformer struct {
	cacheSize int
	pjCache   *otter.Cache[string, *transformation]
}

// A TransformerOption sets an option on a Transformer.
type TransformerOption func(*Transformer)

// A transformation is a PJ from a CRS to WGS84 in longitude, latitude order.
// PJs must not be used concurrently.
type transformation struct {
	mutex sync.Mutex
	pj    *proj.PJ
}

// NewTransformer returns a new Transformer with the given options.
func NewTransformer(options ...TransformerOption) (*Transformer, error) {
	t := &Transformer{
		cacheSize: 16,
	}
	for _, option := range options {
		option(t)
	}

	var err error
	t.pjCache, err = otter.New(&otter.Options[string, *transformation]{
		MaximumSize: t.cacheSize,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// WithTransformerCacheSize sets the maximum number of CRSs for which
// transformations are kept.
func WithTransformerCacheSize(cacheSize int) TransformerOption {
	return func(t *Transformer) {
		t.cacheSize = cacheSize
	}
}

// Points transforms coords in crs into Points. Each coord is in the CRS's
// conventional x, y order, e.g. easting, northing or longitude, latitude.
// coords is not modified.
func (t *Transformer) Points(ctx context.Context, crs string, coords [][]float64) ([]Point, error) {
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coord %d: need at least 2 dimensions, got %d", i, len(coord))
		}
	}

	crs = strings.TrimSpace(crs)
	transformedCoords := coords
	if !strings.EqualFold(crs, WGS84) {
		tr, err := t.getTransformationCached(ctx, crs)
		if err != nil {
			return nil, err
		}
		transformedCoords = cloneCoords(coords)
		if err := tr.forward(transformedCoords); err != nil {
			return nil, fmt.Errorf("%s: %w", crs, err)
		}
	}

	points := make([]Point, len(transformedCoords))
	for i, coord := range transformedCoords {
		points[i] = Point{Lon: coord[0], Lat: coord[1]}
	}
	return points, nil
}

// Bounds returns the bounding box of coords in crs.
func (t *Transformer) Bounds(ctx context.Context, crs string, coords [][]float64) (BoundingBox, error) {
	points, err := t.Points(ctx, crs, coords)
	if err != nil {
		return BoundingBox{}, err
	}
	return Bounds(points)
}

func (tr *transformation) forward(coords [][]float64) error {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()
	return tr.pj.ForwardFloat64Slices(coords)
}

// getTransformation returns a new transformation from crs to WGS84.
func (t *Transformer) getTransformation(ctx context.Context, crs string) (*transformation, error) {
	transformerCacheMisses.Inc()
	pj, err := proj.NewCRSToCRS(crs, WGS84, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", crs, err)
	}
	normalizedPJ, err := pj.NormalizeForVisualization()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", crs, err)
	}
	return &transformation{
		pj: normalizedPJ,
	}, nil
}

// getTransformationCached returns the transformation from crs to WGS84 using
// t's cache.
func (t *Transformer) getTransformationCached(ctx context.Context, crs string) (*transformation, error) {
	return t.pjCache.Get(ctx, crs, otter.LoaderFunc[string, *transformation](t.getTransformation))
}

func cloneCoords(coords [][]float64) [][]float64 {
	clonedCoordsFlat := make([]float64, 2*len(coords))
	clonedCoords := make([][]float64, len(coords))
	for i, coord := range coords {
		copy(clonedCoordsFlat[2*i:2*i+2], coord)
		clonedCoords[i] = clonedCoordsFlat[2*i : 2*i+2]
	}
	return clonedCoords
}
