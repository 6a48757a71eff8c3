package blend

import (
	"image"
	"image/color"
)

// DrawMask paints c through mask onto dst.
//
// The mask's top-left pixel mp lands on dst at r.Min, and r is clipped to
// both images. For every pixel the operator is applied at full strength
// with c as the source, then mixed with the old destination using the mask
// coverage as the weight, so zero coverage leaves dst untouched whatever
// the mode.
func DrawMask(dst *image.RGBA, r image.Rectangle, mask *image.Alpha, mp image.Point, c color.RGBA, mode Mode) {
	orig := r.Min
	r = r.Intersect(dst.Bounds())
	r = r.Intersect(mask.Bounds().Add(orig.Sub(mp)))
	if r.Empty() {
		return
	}
	mp = mp.Add(r.Min.Sub(orig))
	fn := FuncFor(mode)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := mask.AlphaAt(mp.X+x-r.Min.X, mp.Y+y-r.Min.Y).A
			if m == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]

			br, bg, bb, ba := fn(c.R, c.G, c.B, c.A, p[0], p[1], p[2], p[3])
			if m == 255 {
				p[0], p[1], p[2], p[3] = br, bg, bb, ba
				continue
			}
			p[0] = lerp255(p[0], br, m)
			p[1] = lerp255(p[1], bg, m)
			p[2] = lerp255(p[2], bb, m)
			p[3] = lerp255(p[3], ba, m)
		}
	}
}
