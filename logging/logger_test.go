package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger(t *testing.T) {
	assert := assert.New(t)
	assert.NotNil(DefaultLogger())
	assert.NoError(DefaultLogger().Log(MessageKey(), "discarded"))
}

func TestKeys(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("msg", MessageKey())
	assert.Equal("error", ErrorKey())
	assert.Equal("ts", TimestampKey())
	assert.Equal("integration", IntegrationKey())
	assert.Equal("call", CallKey())
}

func testNewFilterSuppresses(t *testing.T) {
	var (
		assert = assert.New(t)
		output bytes.Buffer

		logger = NewFilter(log.NewLogfmtLogger(&output), &Options{Level: "ERROR"})
	)

	assert.NoError(Debug(logger).Log(MessageKey(), "should not appear"))
	assert.Empty(output.String())

	assert.NoError(Error(logger).Log(MessageKey(), "should appear"))
	assert.Contains(output.String(), "should appear")
}

func testNewFilterAllows(t *testing.T) {
	var (
		assert = assert.New(t)
		output bytes.Buffer

		logger = NewFilter(log.NewLogfmtLogger(&output), &Options{Level: "DEBUG"})
	)

	for _, leveled := range []log.Logger{Debug(logger), Info(logger), Warn(logger), Error(logger)} {
		assert.NoError(leveled.Log(MessageKey(), "entry"))
	}

	assert.Equal(4, strings.Count(output.String(), "entry"))
}

func TestNewFilter(t *testing.T) {
	t.Run("Suppresses", testNewFilterSuppresses)
	t.Run("Allows", testNewFilterAllows)
}

func TestNew(t *testing.T) {
	assert := assert.New(t)
	assert.NotNil(New(nil))
	assert.NotNil(New(&Options{JSON: true, Level: "INFO"}))
}

func TestFromViper(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		v = viper.New()
	)

	v.SetConfigType("yaml")
	require.NoError(v.ReadConfig(strings.NewReader(`
log:
  file: "stdout"
  json: true
  level: "DEBUG"
`)))

	o, err := FromViper(Sub(v))
	require.NoError(err)
	assert.Equal(StdoutFile, o.File)
	assert.True(o.JSON)
	assert.Equal("DEBUG", o.Level)

	assert.Nil(Sub(nil))

	o, err = FromViper(nil)
	require.NoError(err)
	assert.Equal(new(Options), o)
}
