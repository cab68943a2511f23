package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthService_Check(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		wantStatus  string
		wantStorage string
	}{
		{"storage reachable", nil, HealthStatusOK, HealthStatusOK},
		{"storage failing", errStorage, HealthStatusDegraded, errStorage.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHealthService(&mockPinger{err: tt.pingErr})

			report := svc.Check(context.Background())

			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, tt.wantStorage, report.Storage)
			assert.False(t, report.Time.IsZero())
		})
	}
}
