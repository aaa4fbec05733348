package svg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/panorama"
)

func testFrame(t *testing.T) core.Panorama {
	t.Helper()
	configuration := core.DefaultConfiguration
	configuration.AnimationDuration = time.Nanosecond
	p := panorama.New(bandplan.MustLoad(), configuration, layout.FixedAdvance(0.6))
	require.True(t, p.Search("2m"))
	p.SetMarker(144.39e6)
	p.Tick(time.Now().Add(time.Hour))
	return p.Data()
}

func TestWrite(t *testing.T) {
	frame := testFrame(t)
	buf := new(bytes.Buffer)

	err := Write(buf, frame)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"), out[:40])
	assert.Contains(t, out, `width="1200"`)
	assert.Contains(t, out, "144.390 MHz")
	assert.Contains(t, out, "2m Amateur Band, 144.000 – 148.000 MHz")
	assert.Contains(t, out, `clip-path="url(#axis)"`)
	assert.Contains(t, out, "#ff4081")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestWrite_WithoutSelection(t *testing.T) {
	configuration := core.DefaultConfiguration
	p := panorama.New(bandplan.MustLoad(), configuration, layout.FixedAdvance(0.6))
	buf := new(bytes.Buffer)

	require.NoError(t, Write(buf, p.Data()))

	out := buf.String()
	assert.Contains(t, out, `height="300"`)
	assert.Contains(t, out, "EHF")
	assert.NotContains(t, out, "translate(")
}

func TestWrite_ReportsWriteErrors(t *testing.T) {
	err := Write(failingWriter{}, testFrame(t))

	assert.Error(t, err)
}

func TestExportFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "spectrum.svg")

	err := ExportFile(filename, testFrame(t))
	require.NoError(t, err)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "</svg>")

	err = ExportFile(filepath.Join(t.TempDir(), "missing", "spectrum.svg"), testFrame(t))
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}
