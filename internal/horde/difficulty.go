package horde

import "time"

// Difficulty scaling coefficients, applied per wave after the first.
const (
	healthScalePerWave = 0.15
	speedScalePerWave  = 0.05

	baseSpawnInterval = 1200 * time.Millisecond
	spawnIntervalStep = 150 * time.Millisecond
	minSpawnInterval  = 200 * time.Millisecond
)

// HealthMultiplier returns the enemy health scale for a wave.
func HealthMultiplier(wave int) float64 {
	return 1 + float64(wave-1)*healthScalePerWave
}

// SpeedMultiplier returns the enemy speed scale for a wave.
func SpeedMultiplier(wave int) float64 {
	return 1 + float64(wave-1)*speedScalePerWave
}

// SpawnInterval returns the minimum time between spawns for a wave.
func SpawnInterval(wave int) time.Duration {
	interval := baseSpawnInterval - time.Duration(wave)*spawnIntervalStep
	if interval < minSpawnInterval {
		return minSpawnInterval
	}
	return interval
}
