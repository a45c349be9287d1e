package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/spawnpool/pkg/config"
)

// ExampleDefault demonstrates the built-in sample configuration.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Initial amount: %d\n", cfg.InitialAmount)
	for _, t := range cfg.Templates {
		fmt.Printf("%s: hp=%d %s\n", t.Kind, t.Health, t.AttackType)
	}

	// Output:
	// Initial amount: 10
	// mage: hp=8 distance
	// warrior: hp=20 melee
	// spider: hp=12 melee
}

// ExampleConfig_Validate shows how to validate a configuration before use.
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Simulation.BatchSize = 30

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Templates[0].AttackType = "magic"
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// validation: invalid template attack_type: unknown attack type "magic"
}
