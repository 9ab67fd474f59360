package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// config is the demo configuration. Every field may be set in the TOML
// file; command-line flags given explicitly take precedence.
type config struct {
	Width         int
	Height        int
	Scale         float64
	Output        string
	Antialias     bool
	DirectScaling bool
	Verbose       bool
}

func defaultConfig() config {
	return config{
		Width:  480,
		Height: 320,
		Scale:  1,
		Output: "fldemo.png",
	}
}

// readConfig decodes path over base. Keys missing from the file keep the
// value from base; unknown keys are an error.
func readConfig(path string, base config) (config, error) {
	conf := base
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return base, fmt.Errorf("read config %s: unknown key %q", path, undec[0].String())
	}
	return conf, conf.validate()
}

// writeConfig stores conf at path, for -init.
func writeConfig(path string, conf config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buffer.Bytes(), 0o644)
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %g", c.Scale)
	}
	if c.Output == "" {
		return fmt.Errorf("no output file")
	}
	return nil
}
