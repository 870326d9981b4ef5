package main

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/twpayne/go-viewport"
)

func run() error {
	width := flag.Int("width", 1280, "viewport width in pixels")
	height := flag.Int("height", 960, "viewport height in pixels")
	minZoom := flag.Int("min-zoom", viewport.DefaultMinZoom, "minimum zoom level")
	maxZoom := flag.Int("max-zoom", viewport.DefaultMaxZoom, "maximum zoom level")
	crs := flag.String("crs", cmp.Or(os.Getenv("VIEWPORT_CRS"), viewport.WGS84), "CRS of input coordinates")
	geoTIFF := flag.String("geotiff", "", "path to a GeoTIFF whose extent to fit")
	flag.Parse()

	ctx := context.Background()

	transformer, err := viewport.NewTransformer()
	if err != nil {
		return err
	}

	var bounds viewport.BoundingBox
	if *geoTIFF != "" {
		extent, err := viewport.ReadGeoTIFFExtent(os.DirFS(filepath.Dir(*geoTIFF)), filepath.Base(*geoTIFF))
		if err != nil {
			return err
		}
		bounds, err = transformer.GeoTIFFBounds(ctx, extent)
		if err != nil {
			return err
		}
	} else {
		var coords [][]float64
		if flag.NArg() > 0 {
			coords, err = parseCoords(strings.NewReader(strings.Join(flag.Args(), "\n")))
		} else {
			coords, err = parseCoords(os.Stdin)
		}
		if err != nil {
			return err
		}
		bounds, err = transformer.Bounds(ctx, *crs, coords)
		if errors.Is(err, viewport.ErrEmptyInput) {
			return errors.New("syntax: viewport-example [flags] x,y...")
		} else if err != nil {
			return err
		}
	}

	v, err := viewport.New(
		bounds,
		viewport.Dimensions{Width: *width, Height: *height},
		viewport.WithMinZoom(*minZoom),
		viewport.WithMaxZoom(*maxZoom),
	)
	if err != nil {
		return err
	}

	fmt.Println("bounds:    ", bounds)
	fmt.Println("dimensions:", fmt.Sprintf("%dx%d", v.Width(), v.Height()))
	fmt.Println("center:    ", v.CenterLon(), v.CenterLat())
	fmt.Println("zoom:      ", v.Zoom())
	fmt.Println("viewport:  ", v.Bounds())

	return nil
}

// parseCoords parses one x,y coordinate per line from r. Blank lines are
// ignored.
func parseCoords(r io.Reader) ([][]float64, error) {
	var coords [][]float64
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		xStr, yStr, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("%d: %q: expected x,y", lineNumber, line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", lineNumber, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(yStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", lineNumber, err)
		}
		coords = append(coords, []float64{x, y})
	}
	return coords, scanner.Err()
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
