// Package spawnpool is a typed object pool for game entities.
//
// A pool keeps one FIFO queue of inactive instances per registered type,
// together with a template each type was registered with. Callers check
// instances out by type, by example, at random, by predicate or in batches,
// and hand them back with Release. When a queue runs down to its last
// instance the pool builds a fresh one from the template instead, so the
// last queued instance of a type is always kept as a spare.
//
// # Quick Start
//
//	import (
//	    "github.com/ajitpratap0/spawnpool/pkg/entity"
//	    "github.com/ajitpratap0/spawnpool/pkg/pool"
//	)
//
//	templates := []entity.Template{
//	    {Kind: entity.Mage, Health: 8, AttackType: entity.Distance},
//	    {Kind: entity.Warrior, Health: 20, AttackType: entity.Melee},
//	    {Kind: entity.Spider, Health: 12, AttackType: entity.Melee},
//	}
//	enemies, err := entity.NewPool(entity.NewFactory(), templates, 10, pool.WithParent("arena"))
//	if err != nil {
//	    return err
//	}
//
//	strong, err := enemies.AcquireFirst(entity.HealthAbove(10))
//	melee, err := enemies.AcquireBatch(entity.Attacks(entity.Melee), 10, false)
//	...
//	enemies.Release(strong)
//
// # Key Packages
//
//	pkg/pool           - Generic keyed pool: Fill, Acquire*, Release
//	pkg/entity         - Enemy kinds, the Factory host and pool construction
//	pkg/config         - YAML configuration with SPAWNPOOL_* overrides
//	pkg/errors         - Structured errors with a machine-readable type
//	pkg/logger         - zap logging with optional file rotation
//	pkg/metrics        - Prometheus collector implementing pool.Observer
//	pkg/observability  - OpenTelemetry tracing setup and span helper
//	pkg/report         - JSON run reports, optionally zstd-compressed
//	internal/simulation - Spawn-wave simulation driving a pool
//	cmd/spawnpool      - Command line interface
//
// # Command Line
//
//	spawnpool init --out spawnpool.yaml
//	spawnpool types --config spawnpool.yaml
//	spawnpool simulate --config spawnpool.yaml --rounds 500 \
//	    --report run.json.zst --metrics-addr :9090 --trace
package spawnpool
