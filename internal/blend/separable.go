package blend

// separableBlend applies a per-channel blend function B to unmultiplied
// channels and composites the result:
//
//	(1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cb)
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, fn func(s, d byte) byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	sur, sug, sub := unpremultiply(sr, sa), unpremultiply(sg, sa), unpremultiply(sb, sa)
	dur, dug, dub := unpremultiply(dr, da), unpremultiply(dg, da), unpremultiply(db, da)

	invSa := 255 - sa
	invDa := 255 - da
	saDa := mulDiv255(sa, da)

	channel := func(s, d, b byte) byte {
		return addClamp(addClamp(mulDiv255(d, invSa), mulDiv255(s, invDa)), mulDiv255(saDa, b))
	}

	return channel(sr, dr, fn(sur, dur)),
		channel(sg, dg, fn(sug, dug)),
		channel(sb, db, fn(sub, dub)),
		addClamp(sa, mulDiv255(da, invSa))
}

func unpremultiply(c, a byte) byte {
	v := uint16(c) * 255 / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return 255 - mulDiv255(255-s, 255-d)
	})
}

// blendOverlay multiplies dark backdrops and screens light ones.
func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if d < 128 {
			return byte(min(255, 2*uint16(mulDiv255(s, d))))
		}
		return 255 - byte(min(255, 2*uint16(mulDiv255(255-s, 255-d))))
	})
}

func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, minByte)
}

func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, maxByte)
}

func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s > d {
			return s - d
		}
		return d - s
	})
}

// blendExclusion is Difference with lower contrast.
// Formula: B(Cb, Cs) = Cb + Cs - 2 * Cb * Cs
func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		v := int(s) + int(d) - 2*int(mulDiv255(s, d))
		return byte(max(0, min(255, v)))
	})
}
