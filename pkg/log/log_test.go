package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		lvl     string
		want    Level
		wantErr bool
	}{
		{lvl: "debug", want: DebugLevel},
		{lvl: "INFO", want: InfoLevel},
		{lvl: "warn", want: WarnLevel},
		{lvl: "warning", want: WarnLevel},
		{lvl: "error", want: ErrorLevel},
		{lvl: "fatal", want: FatalLevel},
		{lvl: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.lvl, func(t *testing.T) {
			got, err := ParseLevel(tt.lvl)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewContext(t *testing.T) {
	buf := &bytes.Buffer{}
	lo := NewLogger(buf)

	ctx := NewContext(context.Background(), lo, Fields{"relation": "check_ins"})
	FromContext(ctx).Info("hypertable created")

	require.Contains(t, buf.String(), `"relation":"check_ins"`)
	require.Contains(t, buf.String(), "hypertable created")
}

func TestFromContext_Default(t *testing.T) {
	_, ok := FromContext(context.Background()).(*logrus.Entry)
	require.True(t, ok)
}

func TestLogger_SetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	lo := NewLogger(buf)
	lo.SetLevel(ErrorLevel)

	lo.Info("dropped")
	require.Empty(t, buf.String())

	lo.Error("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNewTextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	lo := NewTextLogger(buf)

	lo.WithFields(Fields{"relation": "check_ins"}).Warn("slow")
	require.Contains(t, buf.String(), "level=warning")
	require.Contains(t, buf.String(), "relation=check_ins")
}

func TestLogger_SetLevel_Invalid(t *testing.T) {
	require.Panics(t, func() { NewLogger(&bytes.Buffer{}).SetLevel(Level(42)) })
}
