package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintVersion(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	var buf bytes.Buffer
	PrintVersion(&buf)

	assert.Contains(t, buf.String(), "Version:     1.2.3")
	assert.Contains(t, buf.String(), "OS/Arch:")
	assert.Equal(t, "mcversion/1.2.3", UserAgent())
}
