package models

// HasChanged reports whether the stored row differs from the normalized
// incoming row on any mirrored field. Undecodable stored categories always
// count as changed so the row gets rewritten.
func HasChanged(existing, incoming MirrorProduct, incomingCategories []Category) bool {
	if existing.Name != incoming.Name ||
		existing.Price != incoming.Price ||
		existing.Link != incoming.Link ||
		existing.Downloadable != incoming.Downloadable {
		return true
	}

	stored, err := DecodeCategories(existing.Categories)
	if err != nil {
		return true
	}
	return CategoriesChanged(stored, incomingCategories)
}

// CategoriesChanged compares two category lists as sets keyed by id.
// Order alone is not a change; a renamed or re-slugged id is.
func CategoriesChanged(a, b []Category) bool {
	if len(a) != len(b) {
		return true
	}

	sa, sb := SortCategories(a), SortCategories(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return true
		}
	}
	return false
}
