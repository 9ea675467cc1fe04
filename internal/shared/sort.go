package shared

// Sort options for photo listings.
type SortOption string

const (
	SortUploadedNew SortOption = "uploaded_new"
	SortUploadedOld SortOption = "uploaded_old"
	SortNameAZ      SortOption = "name_az"
	SortNameZA      SortOption = "name_za"
	DefaultSort     SortOption = SortUploadedNew
)

var ValidSorts = map[SortOption]struct{}{
	SortUploadedNew: {},
	SortUploadedOld: {},
	SortNameAZ:      {},
	SortNameZA:      {},
}

// ParseSort returns the option for raw, falling back to DefaultSort.
func ParseSort(raw string) SortOption {
	opt := SortOption(raw)
	if _, ok := ValidSorts[opt]; !ok {
		return DefaultSort
	}
	return opt
}
