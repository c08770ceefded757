package utils

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ValidateBoundary checks a project's site-boundary GeoJSON. The boundary
// is optional; when present it must decode to a polygon with at least a
// triangle's worth of ring points and in-range coordinates.
func ValidateBoundary(boundaryJSON []byte) error {
	if len(boundaryJSON) == 0 {
		return nil
	}

	poly, err := decodeBoundary(boundaryJSON)
	if err != nil {
		return err
	}
	for _, p := range poly {
		if len(p) == 0 || len(p[0]) < 3 {
			return errors.New("site boundary must have at least 3 coordinates to form a polygon")
		}
		for i, pt := range p[0] {
			if pt.Lat() < -90 || pt.Lat() > 90 {
				return fmt.Errorf("invalid coordinate at index %d: latitude %.6f is out of range [-90, 90]", i, pt.Lat())
			}
			if pt.Lon() < -180 || pt.Lon() > 180 {
				return fmt.Errorf("invalid coordinate at index %d: longitude %.6f is out of range [-180, 180]", i, pt.Lon())
			}
		}
	}
	return nil
}

// PointInBoundary reports whether a report's GPS fix falls inside the
// project's site boundary.
func PointInBoundary(boundaryJSON []byte, lat, lng float64) (bool, error) {
	poly, err := decodeBoundary(boundaryJSON)
	if err != nil {
		return false, err
	}
	pt := orb.Point{lng, lat}
	for _, p := range poly {
		if planar.PolygonContains(p, pt) {
			return true, nil
		}
	}
	return false, nil
}

// decodeBoundary accepts a bare GeoJSON geometry or a feature wrapping
// one, and flattens it to the polygons to test against.
func decodeBoundary(boundaryJSON []byte) (orb.MultiPolygon, error) {
	var g orb.Geometry

	if geom, err := geojson.UnmarshalGeometry(boundaryJSON); err == nil {
		g = geom.Geometry()
	} else if feat, err := geojson.UnmarshalFeature(boundaryJSON); err == nil {
		g = feat.Geometry
	} else {
		return nil, fmt.Errorf("invalid site boundary GeoJSON: %w", err)
	}

	switch geom := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, nil
	case orb.MultiPolygon:
		return geom, nil
	default:
		return nil, fmt.Errorf("site boundary must be a Polygon or MultiPolygon, got %s", g.GeoJSONType())
	}
}
