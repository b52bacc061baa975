package core

// Palette is the ordered set of decorative colors assigned to ids.
var Palette = [...]string{
	"#f87171",
	"#fbbf24",
	"#34d399",
	"#60a5fa",
	"#a78bfa",
}

// PaletteColor maps an id to a stable color: Palette[abs(n) mod 5].
func PaletteColor(n int) string {
	i := n % len(Palette)
	if i < 0 {
		i = -i
	}
	return Palette[i]
}
