package series

// Palette holds the fixed tone sets a category series cycles through.
// The split is intentional: a single category gets the mid tone, an odd
// count cycles three tones and an even count cycles two, so neighbouring
// slices never share a color.
type Palette struct {
	Solo string
	Duo  [2]string
	Trio [3]string
}

// ExpensePalette carries the pastel tones of the spending pie.
var ExpensePalette = Palette{
	Solo: "#66b3ff",
	Duo:  [2]string{"#ff9999", "#66b3ff"},
	Trio: [3]string{"#ff9999", "#66b3ff", "#99ff99"},
}

// IncomePalette carries the three green shades of the income pie.
var IncomePalette = Palette{
	Solo: "#A3D9B1",
	Duo:  [2]string{"#D4EDDA", "#73C686"},
	Trio: [3]string{"#D4EDDA", "#A3D9B1", "#73C686"},
}

func (p Palette) colorFor(i, count int) string {
	switch {
	case count == 1:
		return p.Solo
	case count%2 == 1:
		return p.Trio[i%3]
	default:
		return p.Duo[i%2]
	}
}
