// Package domain holds the numeric core of the Aedes aegypti surveillance
// study tooling: zoom selection for the study-plot map snapshots, the
// piecewise-linear climate interpolants, the reservoir carrying-capacity
// model, and the seasonal weighting curves.
//
// # Zoom selection
//
// Study plots are ~1 km² squares. A snapshot's ground footprint at a given
// latitude and Web-Mercator zoom is
//
//	meters_per_pixel = 156543.03392 * cos(lat) / 2^zoom
//	coverage         = meters_per_pixel * image_width_px
//
// SelectZoom scans zooms 14–20 and keeps the candidate whose coverage is
// closest to the 1000 m target, lowest zoom winning ties. At the equator a
// 640 px image covers ~1529 m at zoom 16 and ~764 m at zoom 17, so plots
// near the equator select zoom 17.
//
// # Climate interpolants
//
// Temperature and precipitation arrive as per-period means (one row per 30
// days in the INMET exports). NewInterpolant turns a (day, value) series
// into a continuous curve: exact at samples, linear between them, and
// linearly extrapolated past both ends so model horizons may exceed the
// observed record.
//
// # Reservoir model
//
// Breeding-site humidity is proxied by a bucket water balance. Each period
// adds the previous period's rainfall, removes evaporation
// lambda*(25+T)^2*(100-Hum), and clamps the level to [0, Hmax]. Carrying
// capacity is K = Kmax*H/Hmax + 1, interpolated into K(t). The level
// invariant 0 <= H <= Hmax holds at every sample by construction.
//
// # Weighting curves
//
// Normal, Plateau (power and smooth-erf forms), and Phi translate
// temperature and rainfall into bounded model coefficients. The two plateau
// forms and the two shipped phi parameterizations come from different study
// deployments and are not interchangeable; callers pick one explicitly.
package domain
