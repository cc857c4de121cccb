package domain

import "math"

// webMercatorMetersPerPixel is the ground resolution of a 256px Web-Mercator
// tile at the equator at zoom 0 (equatorial circumference / 256).
const webMercatorMetersPerPixel = 156543.03392

// Default zoom-selection parameters for the 1 km² study plots.
const (
	DefaultImageWidthPx = 640
	DefaultTargetMeters = 1000
	DefaultZoomMin      = 14
	DefaultZoomMax      = 20
)

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MetersPerPixel returns the ground distance covered by one pixel at the
// given latitude and integer zoom level.
func MetersPerPixel(lat float64, zoom int) float64 {
	return webMercatorMetersPerPixel * math.Cos(lat*math.Pi/180) / math.Exp2(float64(zoom))
}

// CoverageMeters estimates the ground width of an image with the given pixel
// width and scale factor at the given latitude and zoom.
func CoverageMeters(lat float64, zoom, widthPx, scale int) float64 {
	return MetersPerPixel(lat, zoom) * float64(widthPx) * float64(scale)
}

// ZoomParams bounds the candidate zoom range and the target ground coverage
// for SelectZoom.
type ZoomParams struct {
	ImageWidthPx int
	TargetMeters float64
	ZoomMin      int
	ZoomMax      int
}

// DefaultZoomParams returns the study defaults: 640px base image, 1 km
// target width, candidate zooms 14 through 20.
func DefaultZoomParams() ZoomParams {
	return ZoomParams{
		ImageWidthPx: DefaultImageWidthPx,
		TargetMeters: DefaultTargetMeters,
		ZoomMin:      DefaultZoomMin,
		ZoomMax:      DefaultZoomMax,
	}
}

// SelectZoom picks the zoom level whose image footprint is closest to the
// target ground coverage at the given latitude. Candidates are scanned in
// ascending order and only a strictly smaller difference replaces the
// current best, so the lowest zoom wins ties. The scale factor is excluded
// here: satellite and roadmap snapshots must share a zoom regardless of the
// resolution they are rendered at.
func SelectZoom(lat float64, p ZoomParams) int {
	best := p.ZoomMin
	bestDiff := math.Inf(1)
	for zoom := p.ZoomMin; zoom <= p.ZoomMax; zoom++ {
		coverage := MetersPerPixel(lat, zoom) * float64(p.ImageWidthPx)
		diff := math.Abs(coverage - p.TargetMeters)
		if diff < bestDiff {
			bestDiff = diff
			best = zoom
		}
	}
	return best
}
