package viewport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errGeoKeys = errors.New("invalid GeoKey directory")

// A GeoKey identifies a GeoTIFF key.
type GeoKey uint16

const (
	GeoKeyGTModelType            GeoKey = 1024
	GeoKeyGTRasterType           GeoKey = 1025
	GeoKeyGTCitation             GeoKey = 1026
	GeoKeyGeodeticCRS            GeoKey = 2048
	GeoKeyGeogCitation           GeoKey = 2049
	GeoKeyGeodeticDatum          GeoKey = 2050
	GeoKeyGeogPrimeMeridian      GeoKey = 2051
	GeoKeyGeogAngularUnits       GeoKey = 2054
	GeoKeyGeogAngularUnitSize    GeoKey = 2055
	GeoKeyEllipsoid              GeoKey = 2056
	GeoKeyEllipsoidSemiMajorAxis GeoKey = 2057
	GeoKeyEllipsoidInvFlattening GeoKey = 2059
	GeoKeyPrimeMeridianLongitude GeoKey = 2061
	GeoKeyProjectedCRS           GeoKey = 3072
	GeoKeyPCSCitation            GeoKey = 3073
	GeoKeyProjection             GeoKey = 3074
	GeoKeyProjCoordTrans         GeoKey = 3075
	GeoKeyProjLinearUnit         GeoKey = 3076
	GeoKeyProjNatOriginLong      GeoKey = 3080
	GeoKeyProjNatOriginLat       GeoKey = 3081
	GeoKeyProjFalseEasting       GeoKey = 3082
	GeoKeyProjFalseNorthing      GeoKey = 3083
	GeoKeyProjCenterLong         GeoKey = 3088
	GeoKeyProjCenterLat          GeoKey = 3089
	GeoKeyProjScaleAtNatOrigin   GeoKey = 3092
)

// GTModelType values.
const (
	ModelTypeProjected  = 1
	ModelTypeGeographic = 2
)

// GTRasterType values.
const (
	RasterPixelIsArea  = 1
	RasterPixelIsPoint = 2
)

// ProjCoordTrans values.
const (
	coordTransTransverseMercator        = 1
	coordTransLambertAzimuthalEqualArea = 10
)

const (
	geoDoubleParamsTag = 34736
	geoASCIIParamsTag  = 34737

	userDefined = 32767

	linearUnitMetre = 9001

	ellipsoidWGS84 = 7030
	ellipsoidGRS80 = 7019
)

// ellipsoids maps EPSG ellipsoid codes to their semi-major axis and inverse
// flattening.
var ellipsoids = map[int][2]float64{
	ellipsoidGRS80: {6378137, 298.257222101},
	ellipsoidWGS84: {6378137, 298.257223563},
}

// geodeticCRSEllipsoids maps EPSG geodetic CRS codes to their ellipsoids.
var geodeticCRSEllipsoids = map[int]int{
	4258: ellipsoidGRS80, // ETRS89
	4269: ellipsoidGRS80, // NAD83
	4326: ellipsoidWGS84,
}

// GeoKeys are the keys parsed from a GeoTIFF GeoKey directory.
type GeoKeys struct {
	Params       map[GeoKey]int
	DoubleParams map[GeoKey]float64
	ASCIIParams  map[GeoKey]string
}

// ParseGeoKeys parses a GeoKeyDirectoryTag and its associated
// GeoDoubleParamsTag and GeoASCIIParamsTag values.
func ParseGeoKeys(directory []uint16, doubleParams []float64, asciiParams []byte) (*GeoKeys, error) {
	if len(directory) < 4 {
		return nil, fmt.Errorf("header: %w", errGeoKeys)
	}
	if version, revision := directory[0], directory[1]; version != 1 || revision != 1 {
		return nil, fmt.Errorf("version %d.%d: %w", version, revision, errors.ErrUnsupported)
	}
	if minorRevision := directory[2]; minorRevision > 1 {
		return nil, fmt.Errorf("minor revision %d: %w", minorRevision, errors.ErrUnsupported)
	}
	numberOfKeys := int(directory[3])
	if len(directory) != 4*(numberOfKeys+1) {
		return nil, fmt.Errorf("%d keys in %d values: %w", numberOfKeys, len(directory), errGeoKeys)
	}

	geoKeys := &GeoKeys{
		Params:       make(map[GeoKey]int),
		DoubleParams: make(map[GeoKey]float64),
		ASCIIParams:  make(map[GeoKey]string),
	}
	for entry := range numberOfKeys {
		key := GeoKey(directory[4*entry+4])
		location := directory[4*entry+5]
		count := int(directory[4*entry+6])
		valueOffset := int(directory[4*entry+7])
		switch location {
		case 0:
			if count != 1 {
				return nil, fmt.Errorf("key %d: %w", key, errGeoKeys)
			}
			geoKeys.Params[key] = valueOffset
		case geoDoubleParamsTag:
			if count != 1 {
				return nil, fmt.Errorf("key %d: %d doubles: %w", key, count, errors.ErrUnsupported)
			}
			if valueOffset >= len(doubleParams) {
				return nil, fmt.Errorf("key %d: %w", key, errGeoKeys)
			}
			geoKeys.DoubleParams[key] = doubleParams[valueOffset]
		case geoASCIIParamsTag:
			if valueOffset+count > len(asciiParams) {
				return nil, fmt.Errorf("key %d: %w", key, errGeoKeys)
			}
			geoKeys.ASCIIParams[key] = string(asciiParams[valueOffset : valueOffset+count])
		default:
			return nil, fmt.Errorf("key %d: tag %d: %w", key, location, errors.ErrUnsupported)
		}
	}
	return geoKeys, nil
}

// CRS returns the CRS described by k. This is an EPSG code, e.g.
// "epsg:3035", or, for user-defined projected CRSs, a PROJ string. Only
// Lambert azimuthal equal area and transverse Mercator user-defined
// projections in metres are supported.
func (k *GeoKeys) CRS() (string, error) {
	var key GeoKey
	switch modelType := k.Params[GeoKeyGTModelType]; modelType {
	case ModelTypeProjected:
		key = GeoKeyProjectedCRS
	case ModelTypeGeographic:
		key = GeoKeyGeodeticCRS
	default:
		return "", fmt.Errorf("model type %d: %w", modelType, errors.ErrUnsupported)
	}
	code, ok := k.Params[key]
	switch {
	case !ok:
		return "", fmt.Errorf("key %d: missing: %w", key, errGeoKeys)
	case code == userDefined && key == GeoKeyProjectedCRS:
		return k.userDefinedProjectedCRS()
	case code == userDefined:
		return "", fmt.Errorf("key %d: user-defined CRS: %w", key, errors.ErrUnsupported)
	default:
		return "epsg:" + strconv.Itoa(code), nil
	}
}

func (k *GeoKeys) userDefinedProjectedCRS() (string, error) {
	if unit, ok := k.Params[GeoKeyProjLinearUnit]; ok && unit != linearUnitMetre {
		return "", fmt.Errorf("linear unit %d: %w", unit, errors.ErrUnsupported)
	}

	var params []string
	switch coordTrans := k.Params[GeoKeyProjCoordTrans]; coordTrans {
	case coordTransLambertAzimuthalEqualArea:
		params = []string{
			"+proj=laea",
			"+lat_0=" + k.doubleParam(GeoKeyProjCenterLat, 0),
			"+lon_0=" + k.doubleParam(GeoKeyProjCenterLong, 0),
		}
	case coordTransTransverseMercator:
		params = []string{
			"+proj=tmerc",
			"+lat_0=" + k.doubleParam(GeoKeyProjNatOriginLat, 0),
			"+lon_0=" + k.doubleParam(GeoKeyProjNatOriginLong, 0),
			"+k_0=" + k.doubleParam(GeoKeyProjScaleAtNatOrigin, 1),
		}
	default:
		return "", fmt.Errorf("coordinate transformation %d: %w", coordTrans, errors.ErrUnsupported)
	}

	ellipsoid, err := k.ellipsoid()
	if err != nil {
		return "", err
	}
	params = append(params,
		"+x_0="+k.doubleParam(GeoKeyProjFalseEasting, 0),
		"+y_0="+k.doubleParam(GeoKeyProjFalseNorthing, 0),
		ellipsoid,
		"+units=m",
		"+no_defs",
		"+type=crs",
	)
	return strings.Join(params, " "), nil
}

// ellipsoid returns the PROJ parameters of k's ellipsoid. Explicit axis
// parameters take precedence over EPSG codes.
func (k *GeoKeys) ellipsoid() (string, error) {
	semiMajorAxis, hasSemiMajorAxis := k.DoubleParams[GeoKeyEllipsoidSemiMajorAxis]
	invFlattening, hasInvFlattening := k.DoubleParams[GeoKeyEllipsoidInvFlattening]
	if !hasSemiMajorAxis || !hasInvFlattening {
		code, ok := k.Params[GeoKeyEllipsoid]
		if !ok || code == userDefined {
			code = geodeticCRSEllipsoids[k.Params[GeoKeyGeodeticCRS]]
		}
		axes, ok := ellipsoids[code]
		if !ok {
			return "", fmt.Errorf("ellipsoid: %w", errors.ErrUnsupported)
		}
		semiMajorAxis, invFlattening = axes[0], axes[1]
	}
	return "+a=" + formatFloat(semiMajorAxis) + " +rf=" + formatFloat(invFlattening), nil
}

func (k *GeoKeys) doubleParam(key GeoKey, defaultValue float64) string {
	value, ok := k.DoubleParams[key]
	if !ok {
		value = defaultValue
	}
	return formatFloat(value)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
