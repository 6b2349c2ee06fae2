package config

import _ "embed"

// ExampleConfig is an example config file listing every key with its default.
//
//go:embed config.example.json
var ExampleConfig string
