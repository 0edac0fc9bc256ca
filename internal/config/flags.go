package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
	flagStepsU = flag.Int("steps-u", 0, "Grid steps along u")
	flagStepsZ = flag.Int("steps-z", 0, "Grid steps along z")
	flagWatch  = flag.Bool("watch", false, "Reload the config file when it changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagStepsU > 0 {
		cfg.Domain.StepsU = *flagStepsU
	}
	if *flagStepsZ > 0 {
		cfg.Domain.StepsZ = *flagStepsZ
	}
	if *flagWatch {
		cfg.Watch = true
	}
}
