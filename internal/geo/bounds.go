// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package geo holds the map-bounds math for the live courier view. The
// consoles only need a rectangle that covers every reported position; real
// map rendering happens in external tooling fed by these bounds.
package geo

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// Bounds is an axis-aligned lat/lng rectangle. The zero value is empty and
// extends to exactly the first point it sees.
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
	set            bool
}

// Empty reports whether the bounds contain no points yet.
func (b Bounds) Empty() bool { return !b.set }

// Extend grows the bounds to include the point.
func (b Bounds) Extend(lat, lng float64) Bounds {
	if !b.set {
		return Bounds{MinLat: lat, MinLng: lng, MaxLat: lat, MaxLng: lng, set: true}
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if lng < b.MinLng {
		b.MinLng = lng
	}
	if lng > b.MaxLng {
		b.MaxLng = lng
	}
	return b
}

// Merge returns bounds covering both rectangles.
func (b Bounds) Merge(other Bounds) Bounds {
	if other.Empty() {
		return b
	}
	b = b.Extend(other.MinLat, other.MinLng)
	return b.Extend(other.MaxLat, other.MaxLng)
}

// Contains reports whether the point lies inside the bounds (inclusive).
func (b Bounds) Contains(lat, lng float64) bool {
	if !b.set {
		return false
	}
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Center returns the midpoint of the bounds. Empty bounds center on 0,0.
func (b Bounds) Center() Point {
	if !b.set {
		return Point{}
	}
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// Span returns the lat/lng extent of the bounds.
func (b Bounds) Span() (latSpan, lngSpan float64) {
	if !b.set {
		return 0, 0
	}
	return b.MaxLat - b.MinLat, b.MaxLng - b.MinLng
}

// FromPoints builds bounds covering every point. The courier view calls
// this on each position refresh so the window refits, shrinking included.
func FromPoints(points []Point) Bounds {
	var b Bounds
	for _, p := range points {
		b = b.Extend(p.Lat, p.Lng)
	}
	return b
}
