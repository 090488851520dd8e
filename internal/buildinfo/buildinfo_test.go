package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	old := [3]string{Version, Date, Commit}
	t.Cleanup(func() { Version, Date, Commit = old[0], old[1], old[2] })

	var buf bytes.Buffer
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())

	Version, Commit = "v0.3.0", "abc123"
	buf.Reset()
	PrintBuildData(&buf)
	assert.Contains(t, buf.String(), "Build version: v0.3.0\n")
	assert.Contains(t, buf.String(), "Build commit: abc123\n")
}
