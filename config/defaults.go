package config

const (
	defaultDataFolder      = "./data/"
	defaultLogsFolder      = "./labels/"
	defaultWindowSeconds   = 4.0
	defaultFragmentSeconds = 4.0
	defaultStartFrame      = 0
	defaultEgoMode         = "sliding"
	defaultTargetPoints    = 40
	defaultFormat          = "parquet"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

var defaultSensors = []string{"BV2"}

// Default returns a Config populated with the labeling defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataFolder: defaultDataFolder,
			LogsFolder: defaultLogsFolder,
		},
		Extraction: Extraction{
			WindowSeconds:   defaultWindowSeconds,
			FragmentSeconds: defaultFragmentSeconds,
			StartFrame:      defaultStartFrame,
			EgoMode:         defaultEgoMode,
			Sensors:         append([]string(nil), defaultSensors...),
			TargetPoints:    defaultTargetPoints,
		},
		Output: Output{
			Format:     defaultFormat,
			CopySource: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
