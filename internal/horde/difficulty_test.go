package horde

import (
	"testing"
	"time"
)

func TestSpawnInterval(t *testing.T) {
	tests := []struct {
		wave     int
		expected time.Duration
	}{
		{1, 1050 * time.Millisecond},
		{2, 900 * time.Millisecond},
		{6, 300 * time.Millisecond},
		{7, 200 * time.Millisecond},
		{20, 200 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := SpawnInterval(tc.wave); got != tc.expected {
			t.Errorf("SpawnInterval(%d) = %v, expected %v", tc.wave, got, tc.expected)
		}
	}
}

func TestMultipliers(t *testing.T) {
	if !approx(HealthMultiplier(1), 1) || !approx(SpeedMultiplier(1), 1) {
		t.Error("wave 1 should not scale enemies")
	}
	if !approx(HealthMultiplier(3), 1.3) {
		t.Errorf("HealthMultiplier(3) = %f, expected 1.3", HealthMultiplier(3))
	}
	if !approx(SpeedMultiplier(3), 1.1) {
		t.Errorf("SpeedMultiplier(3) = %f, expected 1.1", SpeedMultiplier(3))
	}
}

func TestKillQuota(t *testing.T) {
	for wave := 1; wave <= 10; wave++ {
		if got := KillQuota(wave); got != 5+5*wave {
			t.Errorf("KillQuota(%d) = %d, expected %d", wave, got, 5+5*wave)
		}
	}
	if NewWaveState(1, 0).Quota != 10 {
		t.Error("wave 1 quota should be 10")
	}
}
