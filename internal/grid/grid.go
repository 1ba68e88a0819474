// Package grid builds the fixed-size cell overlay the map page renders on
// top of the base layer.
package grid

import (
	"errors"
	"fmt"
	"math"

	"ninjamap/internal/util"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Nigeria bounding box, [lng, lat] min/max. Default overlay extent.
var NigeriaBound = orb.Bound{
	Min: orb.Point{2.6917, 4.2771},
	Max: orb.Point{14.5772, 13.8659},
}

// DefaultCellSize is the default cell edge in meters.
const DefaultCellSize = 1000.0

// MaxCells caps how many cells a single Build call will generate. The
// default extent (Nigeria at 1 km cells) needs about 1.4 million.
const MaxCells = 2000000

// ErrTooManyCells is returned when the bound and cell size would exceed
// MaxCells.
var ErrTooManyCells = errors.New("grid: bound too large for cell size")

// Cell is one rectangle of the overlay. Corners are [lng, lat]. Cells are
// request-scoped and never persisted.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`

	TopLeft     orb.Point `json:"top_left"`
	TopRight    orb.Point `json:"top_right"`
	BottomLeft  orb.Point `json:"bottom_left"`
	BottomRight orb.Point `json:"bottom_right"`

	// Area in square meters, derived from the corner distances.
	Area float64 `json:"area"`
}

// Bounds implements the rtreego.Spatial interface for point lookups.
func (c *Cell) Bounds() rtreego.Rect {
	minX := c.TopLeft.Lon()
	minY := c.BottomLeft.Lat()
	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{c.TopRight.Lon() - minX, c.TopLeft.Lat() - minY},
	)
	return rect
}

// Polygon returns the closed ring for GeoJSON export.
func (c *Cell) Polygon() orb.Polygon {
	return orb.Polygon{orb.Ring{
		c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft, c.TopLeft,
	}}
}

// Grid is an immutable tessellation of a bounding box.
type Grid struct {
	cells []*Cell
	index *rtreego.Rtree
}

// Build tessellates the bound into cells of roughly cellSize x cellSize
// meters. Cell height is exactly cellSize; width is corrected for latitude
// at each row so the target area holds across the extent. The bound is
// clamped to valid coordinate ranges; a bound that would exceed MaxCells
// returns ErrTooManyCells.
func Build(bound orb.Bound, cellSize float64) (*Grid, error) {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}

	bound = clampToWorld(bound)
	minLat, maxLat := bound.Min.Lat(), bound.Max.Lat()
	minLng, maxLng := bound.Min.Lon(), bound.Max.Lon()

	g := &Grid{index: rtreego.NewTree(2, 25, 50)}
	if minLat >= maxLat || minLng >= maxLng {
		return g, nil
	}
	if estimateCells(bound, cellSize) > MaxCells {
		return nil, ErrTooManyCells
	}

	lat := maxLat
	row := 0
	for lat > minLat {
		// Step exactly cellSize meters south.
		nextLat := util.DestinationPoint(lat, minLng, 180, cellSize)[0]
		midLat := (lat + nextLat) / 2

		// Longitude degrees covering cellSize meters at this latitude.
		lngStep := cellSize / (earthRadius * math.Cos(midLat*math.Pi/180)) * 180 / math.Pi

		lng := minLng
		col := 0
		for lng < maxLng {
			nextLng := lng + lngStep

			cell := &Cell{
				Row:         row,
				Col:         col,
				TopLeft:     orb.Point{lng, lat},
				TopRight:    orb.Point{nextLng, lat},
				BottomLeft:  orb.Point{lng, nextLat},
				BottomRight: orb.Point{nextLng, nextLat},
			}
			cell.Area = cellArea(cell)

			g.cells = append(g.cells, cell)
			g.index.Insert(cell)

			lng = nextLng
			col++
		}

		lat = nextLat
		row++
	}

	return g, nil
}

const earthRadius = 6371000.0

// clampToWorld restricts the bound to valid latitude/longitude ranges so
// the row stepping below always walks toward the southern edge.
func clampToWorld(bound orb.Bound) orb.Bound {
	clamp := func(v, lo, hi float64) float64 {
		return math.Min(math.Max(v, lo), hi)
	}
	return orb.Bound{
		Min: orb.Point{clamp(bound.Min.Lon(), -180, 180), clamp(bound.Min.Lat(), -90, 90)},
		Max: orb.Point{clamp(bound.Max.Lon(), -180, 180), clamp(bound.Max.Lat(), -90, 90)},
	}
}

// estimateCells bounds the cell count before any allocation. Column count
// is taken at the latitude closest to the equator, where rows are widest.
func estimateCells(bound orb.Bound, cellSize float64) float64 {
	minLat, maxLat := bound.Min.Lat(), bound.Max.Lat()
	minLng, maxLng := bound.Min.Lon(), bound.Max.Lon()

	rows := math.Ceil(util.HaversineDistance(minLat, minLng, maxLat, minLng) / cellSize)

	refLat := math.Min(math.Abs(minLat), math.Abs(maxLat))
	if minLat <= 0 && maxLat >= 0 {
		refLat = 0
	}
	lngStep := cellSize / (earthRadius * math.Cos(refLat*math.Pi/180)) * 180 / math.Pi
	cols := math.Ceil((maxLng - minLng) / lngStep)

	return rows * cols
}

// cellArea approximates the cell area as width at mid-latitude times height.
func cellArea(c *Cell) float64 {
	midLat := (c.TopLeft.Lat() + c.BottomLeft.Lat()) / 2
	width := util.HaversineDistance(midLat, c.TopLeft.Lon(), midLat, c.TopRight.Lon())
	height := util.HaversineDistance(c.TopLeft.Lat(), c.TopLeft.Lon(), c.BottomLeft.Lat(), c.BottomLeft.Lon())
	return width * height
}

// Cells returns all cells in row-major order.
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// Count returns the number of cells.
func (g *Grid) Count() int {
	return len(g.cells)
}

// CellAt returns the cell containing the given [lng, lat] point, or nil if
// the point falls outside the grid.
func (g *Grid) CellAt(p orb.Point) *Cell {
	hits := g.index.SearchIntersect(pointRect(p))
	for _, hit := range hits {
		cell := hit.(*Cell)
		if p.Lon() >= cell.TopLeft.Lon() && p.Lon() < cell.TopRight.Lon() &&
			p.Lat() <= cell.TopLeft.Lat() && p.Lat() > cell.BottomLeft.Lat() {
			return cell
		}
	}
	return nil
}

func pointRect(p orb.Point) rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{p.Lon(), p.Lat()}, []float64{1e-9, 1e-9})
	return rect
}

// FeatureCollection exports the grid as GeoJSON for the overlay layer.
func (g *Grid) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, cell := range g.cells {
		f := geojson.NewFeature(cell.Polygon())
		f.ID = fmt.Sprintf("cell_%d_%d", cell.Row, cell.Col)
		f.Properties["row"] = cell.Row
		f.Properties["col"] = cell.Col
		f.Properties["area"] = cell.Area
		fc.Append(f)
	}
	return fc
}
