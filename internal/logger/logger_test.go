package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugf_SilentByDefault(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestDebugf_PrintsWhenVerbose(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Debugf("embedded %d chunks", 4)
	Warnf("skipping %s", "bad.pdf")
	assert.Contains(t, buf.String(), "[debug] embedded 4 chunks")
	assert.Contains(t, buf.String(), "[warn] skipping bad.pdf")
}
