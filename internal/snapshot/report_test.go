package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovitrap/aedes-study-service/internal/domain"
)

func TestWriteReport(t *testing.T) {
	frozen := time.Date(2015, time.March, 9, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, testAreas(), DefaultOptions()))
	out := sb.String()

	assert.Contains(t, out, "Coordinate Report")
	assert.Contains(t, out, "Generated: 2015-03-09T12:00:00Z")
	assert.Contains(t, out, "NovaIguacu_RJ")
	assert.Contains(t, out, "Moqueta")
	assert.Contains(t, out, "-22.745873633848824")

	// The rendered zoom and coverage must match the selection math.
	zoom := domain.SelectZoom(-22.745873633848824, domain.DefaultZoomParams())
	coverage := domain.CoverageMeters(-22.745873633848824, zoom, 640, 2)
	assert.Contains(t, out, fmt.Sprintf("Zoom:      %d", zoom))
	assert.Contains(t, out, fmt.Sprintf("~%.0fm", coverage))
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinates_report.txt")
	require.NoError(t, SaveReport(path, testAreas(), DefaultOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ceramica")
}

func TestSaveReport_BadPath(t *testing.T) {
	err := SaveReport(filepath.Join(t.TempDir(), "missing", "report.txt"), testAreas(), DefaultOptions())
	require.Error(t, err)
}
