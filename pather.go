package truetype

import "math"

// Pather is an interface to append a glyph's path to canvas.Path.
type Pather interface {
	MoveTo(float64, float64)
	LineTo(float64, float64)
	QuadTo(float64, float64, float64, float64)
	CubeTo(float64, float64, float64, float64, float64, float64)
	Close()
}

type pathPoint struct {
	x, y float64
	on   bool
}

func midpoint(a, b pathPoint) pathPoint {
	return pathPoint{(a.x + b.x) / 2.0, (a.y + b.y) / 2.0, true}
}

// ToPath draws the glyph's outline as quadratic Béziers to the pather. The path is drawn at (x,y) and scaled by the given factor.
func (glyf *GlyphTable) ToPath(p Pather, glyphID uint16, x, y, scale float64) error {
	contour, err := glyf.Contour(glyphID)
	if err != nil {
		return err
	}
	contour.ToPath(p, x, y, scale)
	return nil
}

// ToPath draws the outline as quadratic Béziers to the pather. The path is drawn at (x,y) and scaled by the given factor.
func (contour *Contour) ToPath(p Pather, x, y, scale float64) {
	start := 0
	for _, endPoint := range contour.EndPoints {
		end := int(endPoint) + 1
		if end <= start || len(contour.X) < end {
			start = end
			continue // zero-length contour
		}
		n := end - start
		points := make([]pathPoint, n)
		for i := range points {
			points[i] = pathPoint{
				x:  x + scale*float64(contour.X[start+i]),
				y:  y + scale*float64(contour.Y[start+i]),
				on: contour.OnCurve[start+i],
			}
		}
		start = end

		// rotate so that the contour starts on the curve
		first := -1
		for i, pt := range points {
			if pt.on {
				first = i
				break
			}
		}
		if first == -1 {
			// only control points, start at the implied point between the last and first
			points = append([]pathPoint{midpoint(points[n-1], points[0])}, points...)
			first = 0
		} else if 0 < first {
			rotated := make([]pathPoint, 0, n)
			rotated = append(rotated, points[first:]...)
			points = append(rotated, points[:first]...)
		}

		p.MoveTo(points[0].x, points[0].y)
		var ctrl *pathPoint
		for i := 1; i < len(points); i++ {
			pt := points[i]
			if pt.on {
				if ctrl != nil {
					p.QuadTo(ctrl.x, ctrl.y, pt.x, pt.y)
					ctrl = nil
				} else {
					p.LineTo(pt.x, pt.y)
				}
			} else {
				if ctrl != nil {
					mid := midpoint(*ctrl, pt)
					p.QuadTo(ctrl.x, ctrl.y, mid.x, mid.y)
				}
				ctrl = &points[i]
			}
		}
		if ctrl != nil {
			p.QuadTo(ctrl.x, ctrl.y, points[0].x, points[0].y)
		}
		p.Close()
	}
}

type bboxPather struct {
	XMin, XMax, YMin, YMax float64
	empty                  bool
}

func newBBoxPather() *bboxPather {
	return &bboxPather{empty: true}
}

func (p *bboxPather) add(x, y float64) {
	if p.empty {
		p.XMin, p.XMax, p.YMin, p.YMax = x, x, y, y
		p.empty = false
		return
	}
	p.XMin = math.Min(p.XMin, x)
	p.XMax = math.Max(p.XMax, x)
	p.YMin = math.Min(p.YMin, y)
	p.YMax = math.Max(p.YMax, y)
}

func (p *bboxPather) MoveTo(x float64, y float64) {
	p.add(x, y)
}

func (p *bboxPather) LineTo(x float64, y float64) {
	p.add(x, y)
}

func (p *bboxPather) QuadTo(cpx float64, cpy float64, x float64, y float64) {
	p.add(cpx, cpy)
	p.add(x, y)
}

func (p *bboxPather) CubeTo(cpx1 float64, cpy1 float64, cpx2 float64, cpy2 float64, x float64, y float64) {
	p.add(cpx1, cpy1)
	p.add(cpx2, cpy2)
	p.add(x, y)
}

func (p *bboxPather) Close() {
}

// ControlBox returns the bounding box (xmin,ymin,xmax,ymax) of the control points of the resolved outline. Unlike the bounds in the glyph header it is computed from the points, which is useful for compound glyphs.
func (glyf *GlyphTable) ControlBox(glyphID uint16) (int16, int16, int16, int16, error) {
	p := newBBoxPather()
	if err := glyf.ToPath(p, glyphID, 0.0, 0.0, 1.0); err != nil {
		return 0, 0, 0, 0, err
	} else if p.empty {
		return 0, 0, 0, 0, nil
	}
	return int16(math.Floor(p.XMin)), int16(math.Floor(p.YMin)), int16(math.Ceil(p.XMax)), int16(math.Ceil(p.YMax)), nil
}
