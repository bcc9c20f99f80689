package config

type Config struct {
	Hotkey      string `json:"hotkey"`
	OutputDir   string `json:"output_dir"`
	FPS         int    `json:"fps"`
	JPEGQuality int    `json:"jpeg_quality"`
	AssetDir    string `json:"asset_dir"`
	StartIcon   string `json:"start_icon"`
	StopIcon    string `json:"stop_icon"`
	LogLevel    string `json:"log_level"`
}
