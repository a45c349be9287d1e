// Package config provides configuration management for spawnpool.
//
// A single Config describes one pool: its name, the enemy templates it is
// filled with, and the logging, metrics and simulation settings around it.
//
// # Usage
//
//	cfg, err := config.Load("spawnpool.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	templates, err := cfg.EntityTemplates()
//
// # Environment Variables
//
// ${VAR_NAME} references in the file are substituted before parsing, and
// every scalar setting can be overridden with a SPAWNPOOL_ prefixed variable
// where dots become underscores:
//
//	SPAWNPOOL_INITIAL_AMOUNT=50
//	SPAWNPOOL_LOGGING_LEVEL=debug
//	SPAWNPOOL_SIMULATION_ROUNDS=1000
//
// # Example File
//
//	name: enemies
//	initial_amount: 10
//	parent: arena
//	templates:
//	  - kind: mage
//	    health: 8
//	    attack_type: distance
//	  - kind: warrior
//	    health: 20
//	    attack_type: melee
//	    count: 25
//	logging:
//	  level: info
//	  encoding: json
//	metrics:
//	  enabled: true
//	  listen: ":9090"
//	simulation:
//	  rounds: 100
//	  batch_size: 10
//	  health_threshold: 10
package config
