package snapshot

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ovitrap/aedes-study-service/internal/domain"
)

// WriteReport renders the human-readable coordinates report: every
// neighborhood's center, selected zoom, and estimated ground coverage.
func WriteReport(w io.Writer, cities []domain.City, opts Options) error {
	header := fmt.Sprintf("Aedes aegypti Study Areas - Coordinate Report\n%s\n\nGenerated: %s\n",
		strings.Repeat("=", 60), domain.Now().UTC().Format(time.RFC3339))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for _, city := range cities {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\nCity center reference: (%v, %v)\n\n",
			city.Name, strings.Repeat("-", 40), city.Center.Lat, city.Center.Lon); err != nil {
			return err
		}

		for _, hood := range city.Neighborhoods {
			zoom := domain.SelectZoom(hood.Center.Lat, opts.Zoom)
			coverage := domain.CoverageMeters(hood.Center.Lat, zoom, opts.SizePx, opts.Scale)
			if _, err := fmt.Fprintf(w,
				"  %s:\n    Latitude:  %v\n    Longitude: %v\n    Zoom:      %d\n    Coverage:  ~%.0fm x %.0fm\n\n",
				hood.Name, hood.Center.Lat, hood.Center.Lon, zoom, coverage, coverage); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveReport writes the coordinates report to a file.
func SaveReport(path string, cities []domain.City, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteReport(f, cities, opts); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
