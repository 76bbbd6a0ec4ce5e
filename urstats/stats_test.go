package urstats_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hrissan/ur/urstats"
)

var errTest = errors.New("bad part")

func TestStatsLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := urstats.NewStatsLog(zap.New(core))

	s.PartReceived(1, 9, 1)
	s.FragmentResolved(0, 1, 9)
	require.Equal(t, 0, logs.Len(), "per-part events are off by default")

	s.PartRejected(3, errTest)
	s.MixedPartDropped(2, 64)
	s.MessageComplete(256, 9)
	require.Equal(t, 3, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zapcore.WarnLevel, entry.Level)
	require.Equal(t, "part rejected", entry.Message)
	require.Equal(t, "ur", entry.LoggerName)
	require.Equal(t, uint32(3), entry.ContextMap()["seq"])

	s.SetLevel(-1)
	s.URRejected("ur:bytes/x", errTest)
	require.Equal(t, 3, logs.Len())

	s.SetPrintParts(true)
	s.PartReceived(10, 9, 3)
	require.Equal(t, 4, logs.Len())
	require.Equal(t, zapcore.DebugLevel, logs.All()[3].Level)
}

func TestStatsLogVerbose(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := urstats.NewStatsLogVerbose(zap.New(core))
	s.FragmentResolved(4, 5, 9)
	require.Equal(t, 1, logs.FilterMessage("fragment resolved").Len())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := urstats.NewLogger(&buf, zapcore.InfoLevel)
	log.Debug("hidden")
	log.Info("shown", zap.Int("n", 1))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"message":"shown"`)
	require.Contains(t, buf.String(), `"n":1`)

	level, err := urstats.ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, zapcore.WarnLevel, level)
	_, err = urstats.ParseLevel("loud")
	require.Error(t, err)
}

func TestStatsNop(t *testing.T) {
	s := urstats.NewStatsNop()
	s.PartRejected(1, errTest)
	s.URRejected("", nil)
}
