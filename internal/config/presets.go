package config

import "sort"

// Preset is a named example system in the accepted text layout.
type Preset struct {
	Description string
	Text        string
}

var Presets = map[string]Preset{
	"canonical": {
		Description: "3 x 4 example from the help text, x = [3, 1, 2]",
		Text:        "3,2,-4,3\n2,3,3,15\n5,-3,1,14\n",
	},
	"spaced": {
		Description: "the same system, whitespace separated",
		Text:        " 3.0  2.0  -4.0   3.0\n 2.0  3.0   3.0  15.0\n 5.0 -3.0   1.0  14.0\n",
	},
	"pair": {
		Description: "2 x 3 system, x = [1, 2]",
		Text:        "1 1 3\n1 -1 -1\n",
	},
	"hilbert4": {
		Description: "ill-conditioned 4 x 4 Hilbert system, x = [1, 1, 1, 1]",
		Text: "1 .5 .3333333333333333 .25 2.0833333333333333\n" +
			".5 .3333333333333333 .25 .2 1.2833333333333333\n" +
			".3333333333333333 .25 .2 .16666666666666666 .95\n" +
			".25 .2 .16666666666666666 .14285714285714285 .7595238095238095\n",
	},
	"singular": {
		Description: "linearly dependent rows, no unique solution",
		Text:        "1,2,3,4\n2,4,6,8\n1,1,1,1\n",
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
