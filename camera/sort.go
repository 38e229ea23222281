package camera

import (
	"path/filepath"
	"sort"
)

// SortBySourceImage orders cameras by image basename, breaking ties with the full path.
// Formats without per-row identifiers rely on this order to pair rows with images.
func SortBySourceImage(cams []*Camera) {
	sort.SliceStable(cams, func(i, j int) bool {
		bi, bj := filepath.Base(cams[i].SourceImage), filepath.Base(cams[j].SourceImage)
		if bi != bj {
			return bi < bj
		}
		return cams[i].SourceImage < cams[j].SourceImage
	})
}
