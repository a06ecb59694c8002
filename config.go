package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	FPS           int
	Settings      Settings
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		FPS:           defaultFPS,
		Settings:      DefaultSettings(),
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}

	configPath := filepath.Join(homeDir, ".mogritorc")
	file, err := os.Open(configPath)
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()
	return parseConfig(file, homeDir)
}

// parseConfig reads key = value lines. Unknown keys and bad values are
// logged and skipped.
func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()
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

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch key {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "fps":
			if n, err := strconv.Atoi(value); err == nil && n > 0 && n <= 120 {
				config.FPS = n
			} else {
				Logger().Warn("config: bad fps", "value", value)
			}
		default:
			if err := applySetting(&config.Settings, key, value); err != nil {
				Logger().Warn("config: skipped", "key", key, "err", err)
			}
		}
	}
	if config.Settings.LockAspect {
		config.Settings.Rows = config.Settings.Cols
	}
	return config
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// SaveDir is the directory exports are written to.
func (c *Config) SaveDir() string {
	if c.SaveDirectory == "" {
		return "."
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return c.SaveDirectory
}

var errUnknownKey = errors.New("unknown key")

// applySetting sets one named field. The same keys are used by the rc file
// and by saved sketches.
func applySetting(s *Settings, key, value string) error {
	var err error
	switch key {
	case "cols":
		s.Cols, err = positive(value)
	case "rows":
		s.Rows, err = positive(value)
	case "aspect", "aspectratio":
		if _, ok := aspectRatios[value]; !ok {
			return fmt.Errorf("%q: %w", value, ErrUnknownAspect)
		}
		s.Aspect = value
	case "rowshear":
		s.RowShear, err = strconv.ParseFloat(value, 64)
	case "colshear":
		s.ColShear, err = strconv.ParseFloat(value, 64)
	case "background", "bg":
		s.Background, err = parseHexColor(value)
	case "foreground", "fg":
		s.Foreground, err = parseHexColor(value)
	case "stroke":
		s.Stroke, err = parseHexColor(value)
	case "gradientcolor":
		s.GradientColor, err = parseHexColor(value)
	case "gradient":
		s.Gradient, err = parseGradientKind(value)
	case "usegradient":
		s.UseGradient, err = strconv.ParseBool(value)
	case "usepalette":
		s.UsePalette, err = strconv.ParseBool(value)
	case "invert", "invertpixels":
		s.InvertPixels, err = strconv.ParseBool(value)
	case "strokemode":
		s.StrokeMode, err = strconv.ParseBool(value)
	case "extractpalette":
		s.ExtractPalette, err = strconv.ParseBool(value)
	case "lockaspect":
		s.LockAspect, err = strconv.ParseBool(value)
	case "palette":
		s.Palette, err = ParsePalette(value)
	case "seed":
		s.Seed, err = strconv.ParseInt(value, 10, 64)
	case "fill":
		switch value {
		case "random":
			s.Fill = FillRandom
		case "empty":
			s.Fill = FillEmpty
		default:
			err = fmt.Errorf("unknown fill %q", value)
		}
	case "cycledelay":
		s.CycleDelay, err = positive(value)
	case "strokewidth":
		s.StrokeWidth, err = strconv.ParseFloat(value, 64)
	case "cycle":
		s.Cycle.Enabled, err = strconv.ParseBool(value)
	case "cyclespeed":
		s.Cycle.Speed, err = strconv.ParseFloat(value, 64)
	default:
		if axis, field, ok := splitAxisKey(key); ok {
			a := &s.RowAnim
			if axis == "col" {
				a = &s.ColAnim
			}
			return applyAxisSetting(a, field, value)
		}
		return fmt.Errorf("%q: %w", key, errUnknownKey)
	}
	return err
}

// splitAxisKey splits keys like rowamplitude or colwave.
func splitAxisKey(key string) (axis, field string, ok bool) {
	for _, prefix := range []string{"row", "col"} {
		if rest, found := strings.CutPrefix(key, prefix); found && rest != "" {
			return prefix, rest, true
		}
	}
	return "", "", false
}

func applyAxisSetting(a *AxisAnimation, field, value string) error {
	var err error
	switch field {
	case "anim", "animate":
		a.Enabled, err = strconv.ParseBool(value)
	case "wave":
		a.Wave, err = parseWaveform(value)
	case "amplitude", "amp":
		a.Amplitude, err = strconv.ParseFloat(value, 64)
	case "frequency", "freq":
		a.Frequency, err = strconv.ParseFloat(value, 64)
	case "speed":
		a.Speed, err = strconv.ParseFloat(value, 64)
	default:
		return fmt.Errorf("%q: %w", field, errUnknownKey)
	}
	return err
}

func positive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ErrInvalidSize
	}
	return n, nil
}

// settingLines is the inverse of applySetting.
func settingLines(s Settings) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	lines := []string{
		"cols=" + strconv.Itoa(s.Cols),
		"rows=" + strconv.Itoa(s.Rows),
		"aspect=" + s.Aspect,
		"rowshear=" + f(s.RowShear),
		"colshear=" + f(s.ColShear),
		"background=" + hexColor(s.Background),
		"foreground=" + hexColor(s.Foreground),
		"stroke=" + hexColor(s.Stroke),
		"gradientcolor=" + hexColor(s.GradientColor),
		"gradient=" + s.Gradient.String(),
		"usegradient=" + strconv.FormatBool(s.UseGradient),
		"usepalette=" + strconv.FormatBool(s.UsePalette),
		"invert=" + strconv.FormatBool(s.InvertPixels),
		"strokemode=" + strconv.FormatBool(s.StrokeMode),
		"extractpalette=" + strconv.FormatBool(s.ExtractPalette),
		"lockaspect=" + strconv.FormatBool(s.LockAspect),
		"palette=" + s.Palette.String(),
		"seed=" + strconv.FormatInt(s.Seed, 10),
		"fill=" + s.Fill.String(),
		"cycledelay=" + strconv.Itoa(s.CycleDelay),
		"strokewidth=" + f(s.StrokeWidth),
		"cycle=" + strconv.FormatBool(s.Cycle.Enabled),
		"cyclespeed=" + f(s.Cycle.Speed),
	}
	for _, axis := range []struct {
		prefix string
		a      AxisAnimation
	}{{"row", s.RowAnim}, {"col", s.ColAnim}} {
		lines = append(lines,
			axis.prefix+"anim="+strconv.FormatBool(axis.a.Enabled),
			axis.prefix+"wave="+axis.a.Wave.String(),
			axis.prefix+"amplitude="+f(axis.a.Amplitude),
			axis.prefix+"frequency="+f(axis.a.Frequency),
			axis.prefix+"speed="+f(axis.a.Speed),
		)
	}
	return lines
}
