package models

// District is a lookup row used by the district autocomplete
// ('districts' table). NameLower backs the case-insensitive prefix
// search the original app performed on nombre_minus.
type District struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	NameLower  string `json:"-" db:"name_lower"`
	Department string `json:"department" db:"department"`
}
