package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVerbosity(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetVerbosity(0)

	logger := New("vkboot-test")

	SetVerbosity(0)
	logger.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbosity(1)
	logger.Infof("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	logger.Debugf("hidden %d", 3)
	assert.NotContains(t, buf.String(), "hidden 3")

	SetVerbosity(2)
	logger.Debugf("shown %d", 4)
	require.Contains(t, buf.String(), "shown 4")
	assert.Contains(t, buf.String(), "[vkboot-test]")
}
