package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	ExportSize    int
	Layout        DiagramConfig
}

func defaultAppConfig() *Config {
	return &Config{
		Confirmations: true,
		ExportSize:    int(canvasSize),
		Layout:        DefaultConfig(),
	}
}

// loadConfig reads ~/.ringdrawrc. A missing or unreadable file leaves the
// defaults in place.
func loadConfig() *Config {
	config := defaultAppConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	file, err := os.Open(filepath.Join(homeDir, ".ringdrawrc"))
	if err != nil {
		return config
	}
	defer file.Close()

	parseConfig(file, config, homeDir)
	return config
}

func parseConfig(r io.Reader, config *Config, homeDir string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			if strings.HasPrefix(value, "~") {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if absPath, err := filepath.Abs(value); err == nil {
					value = absPath
				}
			}
			config.SaveDirectory = value
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "exportsize", "export_size":
			if n, err := strconv.Atoi(value); err == nil && n >= 100 && n <= 8000 {
				config.ExportSize = n
			}
		case "gapsize", "gap_size":
			setLayoutValue(&config.Layout.GapSize, value)
		case "levelthickness", "level_thickness":
			setLayoutValue(&config.Layout.LevelThickness, value)
		case "centerradius", "center_radius":
			setLayoutValue(&config.Layout.CenterRadius, value)
		case "arcpadding", "arc_padding":
			setLayoutValue(&config.Layout.ArcPadding, value)
		}
	}
}

// setLayoutValue keeps the previous value when the text is not a usable number.
func setLayoutValue(dst *float64, value string) {
	if v, err := ParseConfigValue(value); err == nil {
		*dst = v
	}
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
