package scraper

// Shape is one interpretation of a locator response: it either finds the
// store list in the decoded tree or reports no match.
type Shape struct {
	Name string
	Find func(root any) ([]any, bool)
}

// ListAt matches when the array lives under the given object path.
func ListAt(path ...string) Shape {
	name := "$"
	for _, p := range path {
		name += "." + p
	}
	return Shape{
		Name: name,
		Find: func(root any) ([]any, bool) {
			list, ok := Dig(root, path...).([]any)
			return list, ok
		},
	}
}

// DirectList matches a top-level array.
var DirectList = Shape{
	Name: "$",
	Find: func(root any) ([]any, bool) {
		list, ok := root.([]any)
		return list, ok
	},
}

// FirstMatch tries shapes in order and returns the first hit and its name.
func FirstMatch(root any, shapes ...Shape) ([]any, string, bool) {
	for _, s := range shapes {
		if list, ok := s.Find(root); ok {
			return list, s.Name, true
		}
	}
	return nil, "", false
}
