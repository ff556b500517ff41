package fileops

// PageRange is the half-open page interval [Start, End) of a split part
type PageRange struct {
	Start int
	End   int
}

// Len returns the number of pages in the range
func (r PageRange) Len() int {
	return r.End - r.Start
}

// Indices lists the zero-based page indices covered by the range
func (r PageRange) Indices() []int {
	indices := make([]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		indices = append(indices, i)
	}
	return indices
}

// Partition divides total pages into parts contiguous chunks of
// ceil(total/parts) pages. Trailing chunks may be short or empty; exactly
// parts ranges are always returned. parts must be at least 1.
func Partition(total, parts int) []PageRange {
	if parts < 1 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	perPart := (total + parts - 1) / parts
	ranges := make([]PageRange, parts)
	for i := range ranges {
		start := min(i*perPart, total)
		end := min((i+1)*perPart, total)
		ranges[i] = PageRange{Start: start, End: end}
	}
	return ranges
}

// FitWithin scales width x height down so that neither edge exceeds
// maxDimension, preserving the aspect ratio. Images that already fit are
// returned unchanged; nothing is ever scaled up.
func FitWithin(width, height, maxDimension int) (int, int) {
	if maxDimension <= 0 || (width <= maxDimension && height <= maxDimension) {
		return width, height
	}
	if width > height {
		h := (height*maxDimension + width/2) / width
		return maxDimension, max(h, 1)
	}
	w := (width*maxDimension + height/2) / height
	return max(w, 1), maxDimension
}
