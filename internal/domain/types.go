package domain

type SortMode string

const (
	SortBySize SortMode = "size"
	SortByName SortMode = "name"
	SortByKind SortMode = "kind"
)

func ValidSortMode(value string) bool {
	switch SortMode(value) {
	case SortBySize, SortByName, SortByKind:
		return true
	default:
		return false
	}
}
