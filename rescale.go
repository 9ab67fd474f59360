package fldraw

import (
	"image"

	"github.com/disintegration/imaging"
)

// resampleFilter picks the imaging filter for a resize from sw x sh to
// dw x dh. Enlarging always replicates pixels; shrinking averages them
// unless the image asked for nearest-neighbour sampling.
func resampleFilter(sw, sh, dw, dh int, mode Scaling) imaging.ResampleFilter {
	if dw >= sw && dh >= sh {
		return imaging.NearestNeighbor
	}
	if mode == ScaleArea {
		return imaging.Box
	}
	return imaging.NearestNeighbor
}

// resampleNRGBA resizes src to w x h. The result never aliases src.
func resampleNRGBA(src *image.NRGBA, w, h int, mode Scaling) *image.NRGBA {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(src)
	}
	return imaging.Resize(src, w, h, resampleFilter(b.Dx(), b.Dy(), w, h, mode))
}

// resampleAlpha resizes a coverage mask to w x h.
func resampleAlpha(src *image.Alpha, w, h int, mode Scaling) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, w, h))
	if b.Dx() == w && b.Dy() == h {
		copy(out.Pix, src.Pix)
		return out
	}
	// imaging converts the mask to NRGBA with the coverage in alpha.
	rs := imaging.Resize(src, w, h, resampleFilter(b.Dx(), b.Dy(), w, h, mode))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = rs.Pix[y*rs.Stride+x*4+3]
		}
	}
	return out
}

// rescaleBuffer resamples a raw w x h buffer of the given depth and
// stride to dw x dh and returns it as a depth-4 buffer with its stride.
// Mono buffers (depth 1) stay mono so the result can go back through the
// mono drawing path.
func rescaleBuffer(buf []byte, w, h, depth, stride, dw, dh int, mono bool) ([]byte, int, int) {
	if mono {
		gray := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				gray.Pix[y*gray.Stride+x] = buf[y*stride+x*depth]
			}
		}
		rs := imaging.Resize(gray, dw, dh, resampleFilter(w, h, dw, dh, ScaleArea))
		out := make([]byte, dw*dh)
		for y := 0; y < dh; y++ {
			for x := 0; x < dw; x++ {
				out[y*dw+x] = rs.Pix[y*rs.Stride+x*4]
			}
		}
		return out, 1, dw
	}
	src := bufferToNRGBA(buf, w, h, depth, stride)
	rs := imaging.Resize(src, dw, dh, resampleFilter(w, h, dw, dh, ScaleArea))
	return rs.Pix, 4, rs.Stride
}
