package config_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"greetbox/pkg/config"
)

// Example_saveAndLoad demonstrates saving and loading configuration.
func Example_saveAndLoad() {
	dir, err := os.MkdirTemp("", "greetbox-config")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.json")

	cfg := config.DefaultConfig()
	cfg.Greeting.Template = "Welcome, %s."
	cfg.Form.Ordering = config.OrderingSubmitted
	if err := config.SaveToFile(cfg, path); err != nil {
		log.Fatal(err)
	}

	loaded, err := config.NewLoader().Load(path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(loaded.GreetingTemplate())
	fmt.Println(loaded.FormOrdering())
	// Output:
	// Welcome, %s.
	// submitted
}

// Example_validation demonstrates configuration validation.
func Example_validation() {
	cfg := config.DefaultConfig()
	cfg.Greeting.Template = "no placeholder"

	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Println(err)
	}
	// Output:
	// greeting.template: invalid template: expected exactly one %s, found 0
}
