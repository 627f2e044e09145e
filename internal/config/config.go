package config

// Config represents the application configuration
type Config struct {
	Data     DataConfig     `toml:"data"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	AI       AIConfig       `toml:"ai"`
}

// DataConfig locates the raw exports and the refined output directory
type DataConfig struct {
	BillsCSV       string `toml:"bills_csv"`
	EventsCSV      string `toml:"events_csv"`
	VotesCSV       string `toml:"votes_csv"`
	LegislatorsCSV string `toml:"legislators_csv"`
	OutputDir      string `toml:"output_dir"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	BillTypes  []string `toml:"bill_types"`
	CardWindow int      `toml:"card_window"`
	CardOffset int      `toml:"card_max_offset"`
	Seed       int64    `toml:"seed"` // 0 = seed from the clock
}

// AIConfig contains settings for the text simplification service.
// The API key is read from the GEMINI_API_KEY environment variable.
type AIConfig struct {
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			BillsCSV:       "./data/proposicoes-2025.csv",
			EventsCSV:      "./data/votacoesObjetos-2025.csv",
			VotesCSV:       "./data/votacoesVotos-2025.csv",
			LegislatorsCSV: "./data/deputados.csv",
			OutputDir:      "./out",
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/votomatch/votomatch.db",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			BillTypes:  []string{"PL", "PLP"},
			CardWindow: 40,
			CardOffset: 600,
			Seed:       0,
		},
		AI: AIConfig{
			Endpoint: "https://generativelanguage.googleapis.com",
			Model:    "gemini-2.5-flash",
		},
	}
}
