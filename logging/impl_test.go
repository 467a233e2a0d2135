package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestLevelFiltering(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)

	logger.Debugw("debug message", "leaves", 3)
	logger.Info("info message")
	test.That(t, logs.Len(), test.ShouldEqual, 2)

	logger.SetLevel(WARN)
	logger.Debug("dropped")
	logger.Infof("dropped %d", 1)
	logger.Warnf("kept %d", 2)
	logger.Errorw("kept too")
	test.That(t, logs.Len(), test.ShouldEqual, 4)

	entries := logs.All()
	test.That(t, entries[0].Message, test.ShouldEqual, "debug message")
	test.That(t, entries[0].ContextMap()["leaves"], test.ShouldEqual, int64(3))
	test.That(t, entries[2].Message, test.ShouldEqual, "kept 2")
	test.That(t, entries[2].Level, test.ShouldEqual, zapcore.WarnLevel)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("bvh")
	subsub := sub.Sublogger("query")

	subsub.Info("hello")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].LoggerName, test.ShouldEqual, "bvh.query")

	// Sublogger levels are independent of the parent.
	sub.SetLevel(ERROR)
	sub.Info("dropped")
	logger.Info("kept")
	test.That(t, logs.Len(), test.ShouldEqual, 2)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
	} {
		t.Run(tc.input, func(t *testing.T) {
			level, err := LevelFromString(tc.input)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, level, test.ShouldEqual, tc.expected)
			test.That(t, level.AsZap().String(), test.ShouldEqual, map[Level]string{
				DEBUG: "debug", INFO: "info", WARN: "warn", ERROR: "error",
			}[tc.expected])
		})
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBlankLogger(t *testing.T) {
	logger := NewBlankLogger("blank")
	logger.Info("goes nowhere")
	test.That(t, logger.Sync(), test.ShouldBeNil)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
}
