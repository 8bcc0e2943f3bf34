package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("nonsense").GetLevel())
}

func TestLogError_Fields(t *testing.T) {
	var buf bytes.Buffer
	logg := New("info")
	logg.SetOutput(&buf)

	LogError(logg, "Purchase", "CreatePurchase", "stock increment", map[string]string{"productId": "p1"}, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Purchase", entry["module"])
	assert.Equal(t, "CreatePurchase", entry["funcName"])
	assert.Equal(t, "stock increment", entry["context"])
	assert.Equal(t, "boom", entry["msg"])
	assert.NotNil(t, entry["data"])
}

func TestLogError_NoData(t *testing.T) {
	var buf bytes.Buffer
	logg := New("info")
	logg.SetOutput(&buf)

	LogError(logg, "Returns", "SendToSupplier", "link item", nil, errors.New("x"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasData := entry["data"]
	assert.False(t, hasData)
}
