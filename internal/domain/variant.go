package domain

// Color is a selectable product color
type Color struct {
	ID   string
	Name string
	Hex  string
}

// Selection is the transient color/size choice on a product view
type Selection struct {
	ColorID string
	Size    string
}

// Complete reports whether both a color and a size are selected
func (s Selection) Complete() bool {
	return s.ColorID != "" && s.Size != ""
}

// The catalog has no variant data, so every product shares the same
// synthetic color list, size list and availability matrix.
var (
	Colors = []Color{
		{ID: "black", Name: "Black", Hex: "#000000"},
		{ID: "white", Name: "White", Hex: "#FFFFFF"},
		{ID: "red", Name: "Red", Hex: "#FF0000"},
		{ID: "blue", Name: "Blue", Hex: "#0066CC"},
		{ID: "green", Name: "Green", Hex: "#00AA00"},
	}

	Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

	// Sizes missing from a color's row are unavailable.
	availability = map[string]map[string]bool{
		"black": {"S": true, "M": true, "L": true, "XL": false},
		"white": {"S": true, "M": true, "L": true, "XL": true},
		"red":   {"S": false, "M": true, "L": true, "XL": true},
		"blue":  {"S": true, "M": true, "L": false, "XL": true},
		"green": {"S": true, "M": false, "L": true, "XL": true},
	}
)

// DefaultSelection returns the first color and the first size. The first
// size is not guaranteed to be available for the first color.
func DefaultSelection() Selection {
	return Selection{ColorID: Colors[0].ID, Size: Sizes[0]}
}

// KnownColor reports whether id names a color in the catalog
func KnownColor(id string) bool {
	for _, c := range Colors {
		if c.ID == id {
			return true
		}
	}
	return false
}

// KnownSize reports whether size is in the size list
func KnownSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// SizeAvailable reports whether the (color, size) pair is marked available
func SizeAvailable(colorID, size string) bool {
	return availability[colorID][size]
}

// IsInStock is true iff the selection is complete and the exact pair is available
func IsInStock(sel Selection) bool {
	if !sel.Complete() {
		return false
	}
	return SizeAvailable(sel.ColorID, sel.Size)
}

// FirstAvailableSize returns the first size in list order that is available
// for the color, or "" if none is.
func FirstAvailableSize(colorID string) string {
	for _, s := range Sizes {
		if SizeAvailable(colorID, s) {
			return s
		}
	}
	return ""
}
