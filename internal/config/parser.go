package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/inkboard/internal/board"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch currentSection {
		case "":
			err = setRootField(cfg, key, value)
		case "palette":
			err = setPaletteField(cfg, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "judge":
			err = setJudgeField(&cfg.Judge, key, value)
		default:
			// Ignore unknown sections
		}
		if err != nil {
			section := "root section"
			if currentSection != "" {
				section = fmt.Sprintf("section [%s]", currentSection)
			}
			return nil, fmt.Errorf("error in %s: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	case "board_width":
		n, err := parseDimension(key, value)
		if err != nil {
			return err
		}
		cfg.BoardWidth = n
	case "board_height":
		n, err := parseDimension(key, value)
		if err != nil {
			return err
		}
		cfg.BoardHeight = n
	case "background":
		col, err := parseColorValue(key, value)
		if err != nil {
			return err
		}
		cfg.Background = col
	case "brush_color":
		col, err := parseColorValue(key, value)
		if err != nil {
			return err
		}
		cfg.BrushColor = col
	case "brush_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		if n < board.MinBrushWidth || n > board.MaxBrushWidth {
			return fmt.Errorf("brush_width %d out of range %d..%d", n, board.MinBrushWidth, board.MaxBrushWidth)
		}
		cfg.BrushWidth = n
	}
	return nil
}

// setPaletteField assigns one brush slot. Slots count from 1 and extend
// the default palette when a file defines more entries than stock.
func setPaletteField(cfg *Config, key, value string) error {
	slot, err := strconv.Atoi(key)
	if err != nil || slot < 1 {
		return nil // Ignore unknown keys
	}
	col, err := parseColorValue(key, value)
	if err != nil {
		return err
	}
	for len(cfg.Palette) < slot {
		cfg.Palette = append(cfg.Palette, color.RGBA{A: 0xFF})
	}
	cfg.Palette[slot-1] = col
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "analysis":
		n.Analysis = b
	}
	return nil
}

func setJudgeField(j *Judge, key, value string) error {
	switch strings.ToLower(key) {
	case "gemini_model":
		j.GeminiModel = value
	case "hf_model":
		j.HFModel = value
	}
	return nil
}

func parseDimension(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1", key)
	}
	return n, nil
}

func parseColorValue(key, value string) (color.RGBA, error) {
	col, err := board.ParseColor(value)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	return col, nil
}
