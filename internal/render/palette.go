package render

// palette is the fixed cycling chart palette; bars, wedges and legend
// swatches all index into it modulo its length.
var palette = []string{
	"#06b6d4", "#0ea5b4", "#60a5fa", "#2563eb", "#f59e0b", "#ef4444", "#8b5cf6",
}

// Color returns the palette entry for index i, cycling past the end.
func Color(i int) string {
	return palette[i%len(palette)]
}

// PaletteSize is the number of distinct colors before cycling.
func PaletteSize() int {
	return len(palette)
}
