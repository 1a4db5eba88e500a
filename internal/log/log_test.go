// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_HandleLog(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{
		Writer: &buf,
		Now: func() time.Time {
			return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
		},
	}

	entry := log.NewEntry(&log.Logger{Handler: h, Level: log.DebugLevel})
	entry.Level = log.WarnLevel
	entry.Message = "cache file is corrupt"
	entry.Fields = log.Fields{"path": "cache.json"}

	assert.NoError(t, h.HandleLog(entry))
	assert.Equal(t, "2025-03-04 05:06:07 W cache file is corrupt path=cache.json\n", buf.String())
}

func TestInitLogger_Level(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{env: "", want: log.ErrorLevel},
		{env: "debug", want: log.DebugLevel},
		{env: "WARN", want: log.WarnLevel},
		{env: "bogus", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("POSTCTL_LOG", tt.env)
			InitLogger()
			logger, ok := log.Log.(*log.Logger)
			assert.True(t, ok)
			assert.Equal(t, tt.want, logger.Level)
		})
	}
}
