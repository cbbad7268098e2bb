// Package proximity derives an ordinal distance-from-core heuristic from
// locality name matching. Scores are a tie-break convention, not geographic
// distance in real units; lower means closer to the urban core.
package proximity

import (
	"strings"

	"rentcompare/server/config"
)

// Score maps an (area, region) pair to a band-local distance. Bands are
// tested in the fixed priority order of config.Bands: a band matches when
// the region names it or the area contains one of its localities. A matched
// band scores the index of the first locality found in the area text, or the
// band default when only the region keyword matched. Areas outside every
// band score config.NoMatchDistance.
func Score(area, region string) int {
	a := strings.ToLower(area)
	r := strings.ToLower(region)

	for _, band := range config.Bands {
		byRegion := strings.Contains(r, band.Keyword)

		index := -1
		for i, locality := range band.Localities {
			if strings.Contains(a, locality) {
				index = i
				break
			}
		}

		if !byRegion && index < 0 {
			continue
		}
		if index >= 0 {
			return index
		}
		return band.DefaultDistance
	}

	return config.NoMatchDistance
}
