package tui

import "sort"

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dot bits by micro column and row
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
}

// line draws a segment on the microgrid using Bresenham, clipped to the buffer.
func (b *brailleBuf) line(x0, y0, x1, y1 int) {
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, b.w*2, b.h*4)
	if !ok {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
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

// stroke draws the closed outline of a ring.
func (b *brailleBuf) stroke(ring [][2]int) {
	for i := range ring {
		a, c := ring[i], ring[(i+1)%len(ring)]
		b.line(a[0], a[1], c[0], c[1])
	}
}

// polyline draws an open path.
func (b *brailleBuf) polyline(pts [][2]int) {
	for i := 0; i+1 < len(pts); i++ {
		b.line(pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1])
	}
}

// fill shades the inside of a ring with the even-odd rule, one dot in two.
func (b *brailleBuf) fill(ring [][2]int) {
	if len(ring) < 3 {
		return
	}
	wm, hm := b.w*2, b.h*4
	for y := 0; y < hm; y++ {
		var xs []int
		for i := range ring {
			a, c := ring[i], ring[(i+1)%len(ring)]
			if a[1] == c[1] {
				continue
			}
			if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(c[1]-a[1])
				xs = append(xs, int(float64(a[0])+t*float64(c[0]-a[0])))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= min(wm-1, xs[i+1]); x++ {
				if (x+y)%2 == 0 {
					b.setPixel(x, y)
				}
			}
		}
	}
}

// overlay writes non-empty braille cells over the base rows.
func (b *brailleBuf) overlay(rows [][]rune) {
	for y := 0; y < b.h && y < len(rows); y++ {
		for x := 0; x < b.w && x < len(rows[y]); x++ {
			if mask := b.m[y][x]; mask != 0 {
				rows[y][x] = rune(0x2800 + int(mask))
			}
		}
	}
}

// clip trims a segment to [0,w)x[0,h) (Liang-Barsky).
func clip(x0, y0, x1, y1, w, h int) (int, int, int, int, bool) {
	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0},
		{dx, float64(w-1) - fx0},
		{-dy, fy0},
		{dy, float64(h-1) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return int(fx0 + t0*dx), int(fy0 + t0*dy), int(fx0 + t1*dx), int(fy0 + t1*dy), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
