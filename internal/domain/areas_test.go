package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStudyAreas(t *testing.T) {
	areas := DefaultStudyAreas()
	require.Len(t, areas, 5)

	names := make(map[string]bool)
	for _, city := range areas {
		assert.NotEmpty(t, city.State)
		assert.Len(t, city.Neighborhoods, 3, "city %s", city.Name)
		names[city.Name] = true

		for _, hood := range city.Neighborhoods {
			// All study sites are in Brazil; swapped lat/lon would land
			// outside these bounds.
			assert.InDelta(t, -14, hood.Center.Lat, 20, "%s/%s latitude", city.Name, hood.Name)
			assert.InDelta(t, -54, hood.Center.Lon, 20, "%s/%s longitude", city.Name, hood.Name)
		}
	}

	assert.True(t, names["NovaIguacu_RJ"])
	assert.True(t, names["Santarem_PA"])
}

func TestLoadStudyAreas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "areas.json")
	doc := `[
	  {
	    "name": "NovaIguacu_RJ",
	    "state": "RJ",
	    "center": {"lat": -22.7556, "lon": -43.4503},
	    "neighborhoods": [
	      {"name": "Moqueta", "center": {"lat": -22.7458, "lon": -43.4558}}
	    ]
	  }
	]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cities, err := LoadStudyAreas(path)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "NovaIguacu_RJ", cities[0].Name)
	require.Len(t, cities[0].Neighborhoods, 1)
	assert.Equal(t, "Moqueta", cities[0].Neighborhoods[0].Name)
	assert.InDelta(t, -22.7458, cities[0].Neighborhoods[0].Center.Lat, 1e-9)
}

func TestLoadStudyAreas_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `[{"name": "X"`},
		{"empty table", `[]`},
		{"city without name", `[{"state": "RJ", "neighborhoods": [{"name": "A"}]}]`},
		{"city without neighborhoods", `[{"name": "X", "state": "RJ", "neighborhoods": []}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "areas.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o600))
			_, err := LoadStudyAreas(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadStudyAreas_MissingFile(t *testing.T) {
	_, err := LoadStudyAreas(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
