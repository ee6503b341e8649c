package seeder

import "github.com/heartmarshall/coursereview-backend/internal/domain"

var departmentCatalog = [...]struct{ name, code string }{
	{"מדעי המחשב", "cs"},
	{"מתמטיקה", "math"},
	{"פיזיקה", "physics"},
	{"כימיה", "chem"},
	{"ביולוגיה", "bio"},
	{"הנדסת חשמל", "ee"},
	{"הנדסת תוכנה", "se"},
	{"הנדסה אזרחית", "civil"},
	{"הנדסת תעשייה וניהול", "iem"},
	{"כלכלה", "econ"},
	{"פסיכולוגיה", "psych"},
	{"סטטיסטיקה", "stats"},
}

// DepartmentCatalog returns the ordered list of departments every
// installation starts with. Each call returns a fresh slice.
func DepartmentCatalog() []domain.Department {
	out := make([]domain.Department, len(departmentCatalog))
	for i, d := range departmentCatalog {
		out[i] = domain.Department{Name: d.name, Code: d.code}
	}
	return out
}
