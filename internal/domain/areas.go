package domain

import (
	"encoding/json"
	"fmt"
	"os"
)

// Neighborhood is a single ~1 km² study plot.
type Neighborhood struct {
	Name   string     `json:"name"`
	Center Coordinate `json:"center"`
}

// City groups the study neighborhoods of one municipality.
type City struct {
	Name          string         `json:"name"`
	State         string         `json:"state"`
	Center        Coordinate     `json:"center"` // city-center reference, not a download target
	Neighborhoods []Neighborhood `json:"neighborhoods"`
}

// DefaultStudyAreas returns the built-in surveillance study table: five
// Brazilian cities, three non-adjacent neighborhoods each. Coordinates are
// approximate plot centers taken from the study records.
func DefaultStudyAreas() []City {
	return []City{
		{
			Name: "Santarem_PA", State: "PA",
			Center: Coordinate{Lat: -2.4431, Lon: -54.7081},
			Neighborhoods: []Neighborhood{
				{Name: "Jd_Santarem", Center: Coordinate{Lat: -2.4378241794575026, Lon: -54.71987459086378}},
				{Name: "Republica", Center: Coordinate{Lat: -2.4678187892272376, Lon: -54.71850151326716}},
				{Name: "Santarenzinho", Center: Coordinate{Lat: -2.448755899384659, Lon: -54.739186248494214}},
			},
		},
		{
			Name: "Parnamirim_RN", State: "RN",
			Center: Coordinate{Lat: -5.9158, Lon: -35.2628},
			Neighborhoods: []Neighborhood{
				{Name: "Areia", Center: Coordinate{Lat: -5.911979478632795, Lon: -35.28125445852211}},
				{Name: "Emaus", Center: Coordinate{Lat: -5.883164700992478, Lon: -35.248752695921134}},
				{Name: "Liberdade", Center: Coordinate{Lat: -5.9293443352973325, Lon: -35.2466101857502}},
			},
		},
		{
			Name: "DuqueDeCaxias_RJ", State: "RJ",
			Center: Coordinate{Lat: -22.7856, Lon: -43.3116},
			Neighborhoods: []Neighborhood{
				{Name: "Bilac", Center: Coordinate{Lat: -22.75639311934788, Lon: -43.28599072172676}},
				{Name: "Primavera", Center: Coordinate{Lat: -22.690484842834632, Lon: -43.26754505904175}},
				{Name: "Saracuruna", Center: Coordinate{Lat: -22.67618976653338, Lon: -43.253923409713764}},
			},
		},
		{
			Name: "NovaIguacu_RJ", State: "RJ",
			Center: Coordinate{Lat: -22.7556, Lon: -43.4503},
			Neighborhoods: []Neighborhood{
				{Name: "Cabucu", Center: Coordinate{Lat: -22.78330975017275, Lon: -43.54597528965344}},
				{Name: "Ceramica", Center: Coordinate{Lat: -22.733255495451203, Lon: -43.47619632222511}},
				{Name: "Moqueta", Center: Coordinate{Lat: -22.745873633848824, Lon: -43.45582278212255}},
			},
		},
		{
			Name: "CampoGrande_MS", State: "MS",
			Center: Coordinate{Lat: -20.4428, Lon: -54.6464},
			Neighborhoods: []Neighborhood{
				{Name: "Carlota", Center: Coordinate{Lat: -20.493369919889364, Lon: -54.599496948275636}},
				{Name: "Guanandi", Center: Coordinate{Lat: -20.50009659444382, Lon: -54.6453119802571}},
				{Name: "Planalto", Center: Coordinate{Lat: -20.452341817016315, Lon: -54.62921434767367}},
			},
		},
	}
}

// LoadStudyAreas reads a JSON study-area table from disk. The file holds an
// array of City objects in the same shape as DefaultStudyAreas.
func LoadStudyAreas(path string) ([]City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read study areas: %w", err)
	}
	var cities []City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("parse study areas %s: %w", path, err)
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("study areas %s: no cities defined", path)
	}
	for _, c := range cities {
		if c.Name == "" {
			return nil, fmt.Errorf("study areas %s: city with empty name", path)
		}
		if len(c.Neighborhoods) == 0 {
			return nil, fmt.Errorf("study areas %s: city %s has no neighborhoods", path, c.Name)
		}
	}
	return cities, nil
}
