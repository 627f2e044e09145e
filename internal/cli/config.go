package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "votomatch")
	dataDir := filepath.Join(home, ".local", "share", "votomatch")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'votomatch config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Download the yearly CSV exports from dadosabertos.camara.leg.br")
	fmt.Println("  2. Point [data] at them and run 'votomatch refine'")
	fmt.Println("  3. Run 'votomatch load', then 'votomatch serve'")
	fmt.Println()
	fmt.Println("For AI summaries, export a Gemini key:")
	fmt.Println("  export GEMINI_API_KEY=...")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'votomatch config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# votomatch configuration

[data]
# Raw yearly exports from dadosabertos.camara.leg.br
bills_csv = "./data/proposicoes-2025.csv"
events_csv = "./data/votacoesObjetos-2025.csv"
votes_csv = "./data/votacoesVotos-2025.csv"
legislators_csv = "./data/deputados.csv"

# Where 'refine' writes the closed snapshot CSVs
output_dir = "./out"

[database]
path = "~/.local/share/votomatch/votomatch.db"

[server]
addr = ":8080"
bill_types = ["PL", "PLP"]  # bill types sampled for cards
card_window = 40            # bills fetched per card request
card_max_offset = 600       # upper bound of the random sampling offset
seed = 0                    # 0 = seed card sampling from the clock

[ai]
endpoint = "https://generativelanguage.googleapis.com"
model = "gemini-2.5-flash"
# API key read from GEMINI_API_KEY env var
`
