package config

const (
	defaultStateDir      = "~/.local/share/audioconv"
	defaultInputDir      = "."
	defaultOutputDir     = "converted"
	defaultFormat        = "mp3"
	defaultWorkers       = 16
	defaultTool          = "ffmpeg"
	defaultFFprobe       = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultHistoryLimit  = 20
	defaultLogFileName   = "audioconv.log"
	defaultHistoryDBName = "history.db"
)

// defaultToolArgs run ahead of the "-i <input> <output>" contract so ffmpeg
// never prompts before overwriting an existing output.
var defaultToolArgs = []string{"-hide_banner", "-nostdin", "-y"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Conversion: Conversion{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			Format:    defaultFormat,
			Workers:   defaultWorkers,
			Tool:      defaultTool,
			ToolArgs:  append([]string(nil), defaultToolArgs...),
			FFprobe:   defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Limit: defaultHistoryLimit,
		},
	}
}
