package config

const (
	defaultLogDir       = "~/.local/share/filescape/logs"
	defaultCacheDir     = "~/.cache/filescape"
	defaultWorkDir      = "~/.local/share/filescape/work"
	defaultFPS          = 15
	defaultMaxFiles     = 100
	defaultFrameWidth   = 960
	defaultFrameHeight  = 720
	defaultElevation    = 30.0
	defaultVideoBitrate = 5000
	defaultOutput       = "file_visualization.mp4"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir,
			WorkDir:  defaultWorkDir,
		},
		Render: Render{
			FPS:       defaultFPS,
			MaxFiles:  defaultMaxFiles,
			Width:     defaultFrameWidth,
			Height:    defaultFrameHeight,
			Elevation: defaultElevation,
		},
		Encode: Encode{
			FFmpegBinary:  "ffmpeg",
			FFprobeBinary: "ffprobe",
			VideoBitrate:  defaultVideoBitrate,
			Output:        defaultOutput,
		},
		MatrixCache: MatrixCache{
			Enabled: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
