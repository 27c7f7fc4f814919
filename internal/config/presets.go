package config

import "sort"

// Presets are ready-made boards.
var Presets = map[string]*Config{
	"open": {
		Speed: DefaultSpeed,
		Layout: []string{
			"S.......",
			"........",
			"........",
			".......E",
		},
	},
	"corridor": {
		Speed: 180,
		Layout: []string{
			"S",
			".",
			".",
			".",
			"E",
		},
	},
	"walled": {
		Speed: DefaultSpeed,
		Layout: []string{
			"S.....",
			"######",
			".....E",
		},
	},
	"detour": {
		Speed: 150,
		Layout: []string{
			"S..#......",
			".#.#.####.",
			".#...#..#.",
			".#####.##.",
			"......#..E",
		},
	},
	"spiral": {
		Speed: 170,
		Layout: []string{
			"...........",
			".#########.",
			".#.......#.",
			".#.#####.#.",
			".#.#E..#.#.",
			".#.###.#.#.",
			".#.....#.#.",
			".#######.#.",
			"S........#.",
		},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Speed = p.Speed
	cfg.Layout = append([]string(nil), p.Layout...)
	cfg.Rows, cfg.Cols = len(p.Layout), len([]rune(p.Layout[0]))
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
