package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int64
		wantBytes  int64
	}{
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte("no"))
			},
			wantStatus: http.StatusForbidden,
			wantBytes:  2,
		},
		{
			name:       "implicit ok",
			handler:    func(w http.ResponseWriter, r *http.Request) {},
			wantStatus: http.StatusOK,
			wantBytes:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			h := WithRequestLogging(zap.New(core))(tt.handler)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/challenges/readit/attempts", nil)
			h.ServeHTTP(rec, req)

			entries := logs.FilterMessage("request served").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "POST", fields["method"])
			assert.Equal(t, "/api/challenges/readit/attempts", fields["path"])
			assert.Equal(t, tt.wantStatus, fields["status"])
			assert.Equal(t, tt.wantBytes, fields["bytes"])
		})
	}
}
