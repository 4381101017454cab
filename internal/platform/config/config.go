package config

import (
	"os"
	"strconv"
)

// SnapshotPolicy selects where the banking ledger reads a ship's current
// compliance balance from.
type SnapshotPolicy string

const (
	// PolicyRecompute recomputes the balance from the latest voyage record
	// on every read.
	PolicyRecompute SnapshotPolicy = "recompute"
	// PolicySnapshot reads the most recently created compliance snapshot.
	// Stale if the underlying voyage record changed since the snapshot.
	PolicySnapshot SnapshotPolicy = "snapshot"
)

// DefaultTargetIntensity is the reference deployment's regulatory target,
// in gCO2e/MJ.
const DefaultTargetIntensity = 89.3368

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr        string
	PostgresURL string
	RedisURL    string

	// TargetIntensity is the regulatory GHG intensity threshold in
	// gCO2e/MJ. This is only the per-process default; callers may
	// override it per request.
	TargetIntensity float64

	SnapshotPolicy SnapshotPolicy
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("FUELEU_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	target := DefaultTargetIntensity
	if raw := os.Getenv("TARGET_INTENSITY"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			target = parsed
		}
	}

	policy := PolicyRecompute
	if SnapshotPolicy(os.Getenv("SNAPSHOT_POLICY")) == PolicySnapshot {
		policy = PolicySnapshot
	}

	return Config{
		Addr:            addr,
		PostgresURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		TargetIntensity: target,
		SnapshotPolicy:  policy,
	}
}
