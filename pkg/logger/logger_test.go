package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLogger(t *testing.T) {
	logger := GetLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &logrus.Logger{}, logger)
}

func TestWithName(t *testing.T) {
	entry := WithName("test-logger")
	assert.NotNil(t, entry)
	assert.Equal(t, "test-logger", entry.Data["name"])
}

func TestWithFields(t *testing.T) {
	fields := logrus.Fields{
		"key1": "value1",
		"key2": "value2",
	}
	entry := WithFields(fields)
	assert.NotNil(t, entry)
	assert.Equal(t, "value1", entry.Data["key1"])
	assert.Equal(t, "value2", entry.Data["key2"])
}

func TestSetLevel(t *testing.T) {
	originalLevel := defaultLogger.Level
	defer SetLevel(originalLevel)

	SetLevel(logrus.DebugLevel)
	assert.Equal(t, logrus.DebugLevel, defaultLogger.Level)

	SetLevel(logrus.WarnLevel)
	assert.Equal(t, logrus.WarnLevel, defaultLogger.Level)
}

func TestIsLevelEnabled(t *testing.T) {
	originalLevel := defaultLogger.Level
	defer SetLevel(originalLevel)

	SetLevel(logrus.DebugLevel)
	assert.True(t, IsLevelEnabled(logrus.DebugLevel))
	assert.True(t, IsLevelEnabled(logrus.InfoLevel))
	assert.False(t, IsLevelEnabled(logrus.TraceLevel))

	SetLevel(logrus.ErrorLevel)
	assert.False(t, IsLevelEnabled(logrus.InfoLevel))
	assert.True(t, IsLevelEnabled(logrus.ErrorLevel))
}

func TestSetOutput(t *testing.T) {
	originalLevel := defaultLogger.Level
	defer SetLevel(originalLevel)

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)
	SetLevel(logrus.InfoLevel)

	WithName("capture").Info("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "capture")
}
