package database

const (
	SortPositionAsc = "position_asc"
	SortFilenameAsc = "filename_asc"
	SortFilenameNat = "filename_nat"
	SortDateDesc    = "date_desc"
	SortDateAsc     = "date_asc"
)

const DefaultSortOrder = SortPositionAsc

// IsValidSortOrder checks if a string is a valid sort order constant
func IsValidSortOrder(order string) bool {
	switch order {
	case SortPositionAsc, SortFilenameAsc, SortFilenameNat, SortDateDesc, SortDateAsc:
		return true
	default:
		return false
	}
}
