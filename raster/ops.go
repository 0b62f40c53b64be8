// SPDX-License-Identifier: GPL-2.0-or-later

package raster

import "atlaspack/geom"

// Equal reports whether the rectangular regions a (in bufA) and b (in
// bufB) are byte-identical on all four RGBA channels. a and b must be the
// same size; a size mismatch is always unequal.
func Equal(bufA Buffer, a geom.Rect, bufB Buffer, b geom.Rect) bool {
	if a.W != b.W || a.H != b.H {
		return false
	}
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			if bufA.At(a.X+x, a.Y+y) != bufB.At(b.X+x, b.Y+y) {
				return false
			}
		}
	}
	return true
}

// AlphaBounds scans r for the tight bounding box of pixels whose alpha
// exceeds threshold, intersected back with r. If no pixel qualifies, it
// returns the empty rect at r's origin.
func AlphaBounds(buf Buffer, r geom.Rect, threshold uint8) geom.Rect {
	minX, minY := r.Right(), r.Bottom()
	maxX, maxY := r.X-1, r.Y-1
	found := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if buf.At(x, y).A > threshold {
				found = true
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if !found {
		return geom.NewRect(r.X, r.Y, 0, 0)
	}
	return geom.NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

// rotatedPoint maps a point local to a w x h rect, under a 90-degree
// clockwise rotation, into the corresponding h x w rotated local space.
func rotatedPoint(x, y float32, w, h int) (float32, float32) {
	return float32(h) - y, x
}

// Blit copies srcRect from src to dst at dstOrigin, rotating the pixels 90
// degrees clockwise first when rotate is true (in which case the copied
// footprint is srcRect.H wide and srcRect.W tall).
func Blit(dst Buffer, dstOrigin geom.Point, src Buffer, srcRect geom.Rect, rotate bool) {
	BlitPolygon(dst, dstOrigin, src, srcRect, rotate, nil)
}

// BlitPolygon behaves like Blit, but when polygon is non-empty only pixels
// whose center falls inside the polygon (sprite-local float coordinates,
// in the unrotated srcRect space) are copied; everything else is left
// untouched. Under rotation the polygon is rotated in lockstep with the
// pixels.
func BlitPolygon(dst Buffer, dstOrigin geom.Point, src Buffer, srcRect geom.Rect, rotate bool, polygon []geom.PointF) {
	var poly []geom.PointF
	if len(polygon) > 0 {
		poly = polygon
		if rotate {
			poly = make([]geom.PointF, len(polygon))
			for i, v := range polygon {
				rx, ry := rotatedPoint(v.X, v.Y, srcRect.W, srcRect.H)
				poly[i] = geom.PointF{X: rx, Y: ry}
			}
		}
	}

	for sy := 0; sy < srcRect.H; sy++ {
		for sx := 0; sx < srcRect.W; sx++ {
			var dx, dy int
			if rotate {
				// forward map: src local (sx,sy) in w x h -> dst local (h-1-sy, sx)
				dx = srcRect.H - 1 - sy
				dy = sx
			} else {
				dx, dy = sx, sy
			}
			if len(poly) > 0 {
				var px, py float32
				if rotate {
					px, py = rotatedPoint(float32(sx)+0.5, float32(sy)+0.5, srcRect.W, srcRect.H)
				} else {
					px, py = float32(sx)+0.5, float32(sy)+0.5
				}
				if !pointInPolygon(px, py, poly) {
					continue
				}
			}
			c := src.At(srcRect.X+sx, srcRect.Y+sy)
			dst.Set(dstOrigin.X+dx, dstOrigin.Y+dy, c)
		}
	}
}

// pointInPolygon is a standard even-odd ray-casting test.
func pointInPolygon(x, y float32, poly []geom.PointF) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) {
			xint := pi.X + (y-pi.Y)/(pj.Y-pi.Y)*(pj.X-pi.X)
			if x < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// Extrude replicates the outer edge of rect outward by n pixels on each
// side flagged true, one pixel at a time, so each successive ring is
// copied from the ring it just grew past. Only coinciding sides (the ones
// that touched the original source image edge) are replicated; the other
// sides are left for a neighboring sprite's own padding.
func Extrude(dst Buffer, rect geom.Rect, left, top, right, bottom bool, n int) {
	cur := rect
	for i := 0; i < n; i++ {
		if left {
			for y := cur.Y; y < cur.Bottom(); y++ {
				dst.Set(cur.X-1, y, dst.At(cur.X, y))
			}
		}
		if right {
			for y := cur.Y; y < cur.Bottom(); y++ {
				dst.Set(cur.Right(), y, dst.At(cur.Right()-1, y))
			}
		}
		nx, nw := cur.X, cur.W
		if left {
			nx--
			nw++
		}
		if right {
			nw++
		}
		cur = geom.NewRect(nx, cur.Y, nw, cur.H)

		if top {
			for x := cur.X; x < cur.Right(); x++ {
				dst.Set(x, cur.Y-1, dst.At(x, cur.Y))
			}
		}
		if bottom {
			for x := cur.X; x < cur.Right(); x++ {
				dst.Set(x, cur.Bottom(), dst.At(x, cur.Bottom()-1))
			}
		}
		ny, nh := cur.Y, cur.H
		if top {
			ny--
			nh++
		}
		if bottom {
			nh++
		}
		cur = geom.NewRect(cur.X, ny, cur.W, nh)
	}
}

// DrawRect draws a 1px outline, used by the optional debug overlay.
func DrawRect(dst Buffer, r geom.Rect, c geom.RGBA) {
	for x := r.X; x < r.Right(); x++ {
		dst.Set(x, r.Y, c)
		dst.Set(x, r.Bottom()-1, c)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		dst.Set(r.X, y, c)
		dst.Set(r.Right()-1, y, c)
	}
}

// DrawLine draws a Bresenham line from (x0,y0) to (x1,y1), used by the
// optional debug overlay.
func DrawLine(dst Buffer, x0, y0, x1, y1 int, c geom.RGBA) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		dst.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
