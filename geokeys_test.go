package viewport

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// The GeoKeys of an EU-DEM v1.1 tile.
var (
	euDEMGeoKeyDirectory = []uint16{
		1, 1, 0, 22,
		1024, 0, 1, 1,
		1025, 0, 1, 1,
		1026, 34737, 28, 0,
		2048, 0, 1, 4258,
		2049, 34737, 86, 28,
		2050, 0, 1, 6258,
		2051, 0, 1, 8901,
		2054, 0, 1, 9102,
		2055, 34736, 1, 4,
		2056, 0, 1, 7019,
		2057, 34736, 1, 5,
		2059, 34736, 1, 6,
		2061, 34736, 1, 7,
		3072, 0, 1, 32767,
		3073, 34737, 29, 114,
		3074, 0, 1, 32767,
		3075, 0, 1, 10,
		3076, 0, 1, 9001,
		3082, 34736, 1, 2,
		3083, 34736, 1, 3,
		3088, 34736, 1, 1,
		3089, 34736, 1, 0,
	}
	euDEMGeoDoubleParams = []float64{
		52,
		10,
		4321000,
		3210000,
		0.0174532925199433,
		6378137, 298.257222101,
		0,
	}
	euDEMGeoASCIIParams = "" +
		"PCS Name = ETRS89_ETRS_LAEA|" +
		"GCS Name = GCS_ETRS_1989|Datum = D_ETRS_1989|Ellipsoid = GRS_1980|Primem = Greenwich||" +
		"ESRI PE String = ETRS89_LAEA|"
	euDEMCRS = "+proj=laea +lat_0=52 +lon_0=10 +x_0=4321000 +y_0=3210000 +a=6378137 +rf=298.257222101 +units=m +no_defs +type=crs"
)

func TestParseGeoKeysEUDEM(t *testing.T) {
	actual, err := ParseGeoKeys(euDEMGeoKeyDirectory, euDEMGeoDoubleParams, []byte(euDEMGeoASCIIParams))
	assert.NoError(t, err)

	assert.Equal(t, &GeoKeys{
		Params: map[GeoKey]int{
			GeoKeyGTModelType:       ModelTypeProjected,
			GeoKeyGTRasterType:      RasterPixelIsArea,
			GeoKeyGeodeticCRS:       4258,
			GeoKeyGeodeticDatum:     6258,
			GeoKeyGeogPrimeMeridian: 8901,
			GeoKeyGeogAngularUnits:  9102,
			GeoKeyEllipsoid:         7019,
			GeoKeyProjectedCRS:      32767,
			GeoKeyProjection:        32767,
			GeoKeyProjCoordTrans:    10,
			GeoKeyProjLinearUnit:    9001,
		},
		DoubleParams: map[GeoKey]float64{
			GeoKeyGeogAngularUnitSize:    0.0174532925199433,
			GeoKeyEllipsoidSemiMajorAxis: 6378137,
			GeoKeyEllipsoidInvFlattening: 298.257222101,
			GeoKeyPrimeMeridianLongitude: 0,
			GeoKeyProjFalseEasting:       4321000,
			GeoKeyProjFalseNorthing:      3210000,
			GeoKeyProjCenterLong:         10,
			GeoKeyProjCenterLat:          52,
		},
		ASCIIParams: map[GeoKey]string{
			GeoKeyGTCitation:   "PCS Name = ETRS89_ETRS_LAEA|",
			GeoKeyGeogCitation: "GCS Name = GCS_ETRS_1989|Datum = D_ETRS_1989|Ellipsoid = GRS_1980|Primem = Greenwich||",
			GeoKeyPCSCitation:  "ESRI PE String = ETRS89_LAEA|",
		},
	}, actual)

	crs, err := actual.CRS()
	assert.NoError(t, err)
	assert.Equal(t, euDEMCRS, crs)
}

func TestGeoKeysCRS(t *testing.T) {
	for _, tc := range []struct {
		name         string
		directory    []uint16
		doubleParams []float64
		expectedCRS  string
		expectedErr  error
	}{
		{
			name: "epsg_3035",
			directory: []uint16{
				1, 1, 0, 2,
				1024, 0, 1, 1,
				3072, 0, 1, 3035,
			},
			expectedCRS: "epsg:3035",
		},
		{
			name: "epsg_3857",
			directory: []uint16{
				1, 1, 1, 3,
				1024, 0, 1, 1,
				1025, 0, 1, 1,
				3072, 0, 1, 3857,
			},
			expectedCRS: "epsg:3857",
		},
		{
			name: "epsg_4326",
			directory: []uint16{
				1, 1, 0, 2,
				1024, 0, 1, 2,
				2048, 0, 1, 4326,
			},
			expectedCRS: "epsg:4326",
		},
		{
			name: "user_defined_transverse_mercator",
			directory: []uint16{
				1, 1, 0, 7,
				1024, 0, 1, 1,
				2048, 0, 1, 4326,
				3072, 0, 1, 32767,
				3075, 0, 1, 1,
				3080, 34736, 1, 0,
				3082, 34736, 1, 1,
				3092, 34736, 1, 2,
			},
			doubleParams: []float64{9, 500000, 0.9996},
			expectedCRS:  "+proj=tmerc +lat_0=0 +lon_0=9 +k_0=0.9996 +x_0=500000 +y_0=0 +a=6378137 +rf=298.257223563 +units=m +no_defs +type=crs",
		},
		{
			name: "user_defined_ellipsoid_code",
			directory: []uint16{
				1, 1, 0, 4,
				1024, 0, 1, 1,
				2056, 0, 1, 7019,
				3072, 0, 1, 32767,
				3075, 0, 1, 10,
			},
			expectedCRS: "+proj=laea +lat_0=0 +lon_0=0 +x_0=0 +y_0=0 +a=6378137 +rf=298.257222101 +units=m +no_defs +type=crs",
		},
		{
			name: "user_defined_unknown_ellipsoid",
			directory: []uint16{
				1, 1, 0, 3,
				1024, 0, 1, 1,
				3072, 0, 1, 32767,
				3075, 0, 1, 10,
			},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name: "user_defined_feet",
			directory: []uint16{
				1, 1, 0, 5,
				1024, 0, 1, 1,
				2048, 0, 1, 4326,
				3072, 0, 1, 32767,
				3075, 0, 1, 10,
				3076, 0, 1, 9002,
			},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name: "user_defined_lambert_conformal_conic",
			directory: []uint16{
				1, 1, 0, 4,
				1024, 0, 1, 1,
				2048, 0, 1, 4326,
				3072, 0, 1, 32767,
				3075, 0, 1, 8,
			},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name: "user_defined_geographic",
			directory: []uint16{
				1, 1, 0, 2,
				1024, 0, 1, 2,
				2048, 0, 1, 32767,
			},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name: "missing_projected_crs",
			directory: []uint16{
				1, 1, 0, 1,
				1024, 0, 1, 1,
			},
			expectedErr: errGeoKeys,
		},
		{
			name: "geocentric",
			directory: []uint16{
				1, 1, 0, 1,
				1024, 0, 1, 3,
			},
			expectedErr: errors.ErrUnsupported,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			geoKeys, err := ParseGeoKeys(tc.directory, tc.doubleParams, nil)
			assert.NoError(t, err)
			actual, err := geoKeys.CRS()
			if tc.expectedErr != nil {
				assert.IsError(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedCRS, actual)
			}
		})
	}
}

func TestParseGeoKeysErrors(t *testing.T) {
	for _, tc := range []struct {
		name         string
		directory    []uint16
		doubleParams []float64
		asciiParams  []byte
		expectedErr  error
	}{
		{
			name:        "short",
			directory:   []uint16{1, 1, 0},
			expectedErr: errGeoKeys,
		},
		{
			name:        "version",
			directory:   []uint16{2, 1, 0, 0},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name:        "minor_revision",
			directory:   []uint16{1, 1, 2, 0},
			expectedErr: errors.ErrUnsupported,
		},
		{
			name:        "truncated",
			directory:   []uint16{1, 1, 0, 2, 1024, 0, 1, 1},
			expectedErr: errGeoKeys,
		},
		{
			name:        "double_out_of_range",
			directory:   []uint16{1, 1, 0, 1, 2057, 34736, 1, 1},
			expectedErr: errGeoKeys,
		},
		{
			name:        "ascii_out_of_range",
			directory:   []uint16{1, 1, 0, 1, 1026, 34737, 8, 0},
			asciiParams: []byte("short|"),
			expectedErr: errGeoKeys,
		},
		{
			name:        "unknown_tag",
			directory:   []uint16{1, 1, 0, 1, 1024, 12345, 1, 0},
			expectedErr: errors.ErrUnsupported,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGeoKeys(tc.directory, tc.doubleParams, tc.asciiParams)
			assert.IsError(t, err, tc.expectedErr)
		})
	}
}
