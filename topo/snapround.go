//  Copyright (c) 2024 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topo

import (
	"github.com/dhconnelly/rtreego"

	"github.com/blevesearch/planar/geom"
)

// hotPixel is the grid cell around a snap-rounding node point. Every
// segment passing through the pixel is snapped to the pixel centre, which
// preserves topology up to the grid resolution.
type hotPixel struct {
	pt    geom.Coordinate
	scale float64
	env   geom.Envelope
}

func newHotPixel(pt geom.Coordinate, scale float64) hotPixel {
	half := 0.5 / scale
	return hotPixel{
		pt:    pt,
		scale: scale,
		env:   geom.NewEnvelope(pt.X-half, pt.Y-half, pt.X+half, pt.Y+half),
	}
}

// intersectsSegment reports whether the closed segment (p0, p1) passes
// through the pixel.
func (hp hotPixel) intersectsSegment(p0, p1 geom.Coordinate) bool {
	if !hp.env.Intersects(geom.EnvelopeOfCoords(p0, p1)) {
		return false
	}
	if hp.env.ContainsCoord(p0) || hp.env.ContainsCoord(p1) {
		return true
	}
	corners := [4]geom.Coordinate{
		geom.Coord(hp.env.MinX(), hp.env.MinY()),
		geom.Coord(hp.env.MaxX(), hp.env.MinY()),
		geom.Coord(hp.env.MaxX(), hp.env.MaxY()),
		geom.Coord(hp.env.MinX(), hp.env.MaxY()),
	}
	for i := 0; i < 4; i++ {
		res := SegmentIntersection(p0, p1, corners[i], corners[(i+1)%4])
		if res.Kind != NoIntersection {
			return true
		}
	}
	return false
}

// segmentItem is one edge segment registered in the snapping index.
type segmentItem struct {
	e        *Edge
	segIndex int
}

// Bounds implements rtreego.Spatial.
func (si segmentItem) Bounds() rtreego.Rect {
	return rectFromEnvelope(geom.EnvelopeOfCoords(si.e.pts[si.segIndex], si.e.pts[si.segIndex+1]))
}

// snapToHotPixels adds a node to every segment passing through the hot
// pixel of an intersection point or input vertex. Called after exact
// noding with a fixed precision model, it makes the noding output fully
// robust on the grid.
func snapToHotPixels(edges []*Edge, pm *geom.PrecisionModel) {
	scale := pm.Scale()

	// index all segments
	tree := rtreego.NewTree(2, 4, 16)
	for _, e := range edges {
		for i := 0; i < len(e.pts)-1; i++ {
			tree.Insert(segmentItem{e: e, segIndex: i})
		}
	}

	// hot pixels arise at intersection points and at every input vertex
	seen := make(map[coordKey]struct{})
	var pixels []hotPixel
	addPixel := func(pt geom.Coordinate) {
		key := keyOf(pt)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pixels = append(pixels, newHotPixel(pt, scale))
	}
	for _, e := range edges {
		for _, ei := range e.eiList.list {
			addPixel(ei.coord)
		}
		for _, pt := range e.pts {
			addPixel(pt)
		}
	}

	for _, hp := range pixels {
		for _, item := range tree.SearchIntersect(rectFromEnvelope(hp.env)) {
			si := item.(segmentItem)
			p0 := si.e.pts[si.segIndex]
			p1 := si.e.pts[si.segIndex+1]
			// segment endpoints equal to the pixel centre are already nodes
			if hp.pt.Equals2D(p0) || hp.pt.Equals2D(p1) {
				continue
			}
			if hp.intersectsSegment(p0, p1) {
				si.e.eiList.add(hp.pt, si.segIndex, edgeDistance(hp.pt, p0, p1))
			}
		}
	}
}
