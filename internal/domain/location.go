package domain

import "strings"

// Location is a place suggestion for the birth place and current location fields.
type Location struct {
	ID        int64
	Name      string
	Admin1    string
	Country   string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// Label joins name, region and country, skipping empty parts.
func (l *Location) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Admin1, l.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}
