package config

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"deedles.dev/circscroll/internal/scroll"
)

//go:embed default
var defaultFile string

type Config struct {
	Sensitivity int
	Retry       time.Duration
	Grab        bool
	Processors  []string
	Devices     []string

	grabSet bool
}

func DefaultFile() string {
	return defaultFile
}

func DefaultPath() (string, error) {
	c, err := os.UserConfigDir()
	return filepath.Join(c, "circscroll", "config"), err
}

func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (c Config, err error) {
	var num int
	s := bufio.NewScanner(r)
	for s.Scan() {
		num++

		line := strings.TrimSpace(s.Text())
		if (len(line) == 0) || (line[0] == '#') {
			continue
		}

		directive, rem, _ := strings.Cut(line, " ")
		rem = strings.TrimSpace(rem)
		switch directive {
		case "sensitivity":
			err = c.sensitivity(rem)
		case "retry":
			err = c.retry(rem)
		case "grab":
			err = c.grab(rem)
		case "processor":
			err = c.processor(rem)
		case "device":
			err = c.device(rem)
		default:
			return c, fmt.Errorf("unknown directive %q on line %v", directive, num)
		}
		if err != nil {
			return c, fmt.Errorf("line %v: %w", num, err)
		}
	}
	if err := s.Err(); err != nil {
		return c, fmt.Errorf("scan: %w", err)
	}

	return c, nil
}

func (c *Config) sensitivity(str string) error {
	if c.Sensitivity != 0 {
		return errors.New("attempted to set sensitivity twice")
	}

	v, err := strconv.ParseInt(str, 0, 0)
	if err != nil {
		return fmt.Errorf("parse sensitivity: %w", err)
	}
	if v <= 0 {
		return fmt.Errorf("sensitivity must be positive, got %v", v)
	}
	if v > scroll.MaxSensitivity {
		return fmt.Errorf("sensitivity must be at most %v, got %v", scroll.MaxSensitivity, v)
	}
	c.Sensitivity = int(v)
	return nil
}

func (c *Config) retry(str string) error {
	if c.Retry != 0 {
		return errors.New("attempted to set retry twice")
	}

	r, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("parse retry: %w", err)
	}
	c.Retry = r
	return nil
}

func (c *Config) grab(str string) error {
	if c.grabSet {
		return errors.New("attempted to set grab twice")
	}

	switch str {
	case "yes", "true", "on":
		c.Grab = true
	case "no", "false", "off":
		c.Grab = false
	default:
		return fmt.Errorf("parse grab: expected yes or no, got %q", str)
	}
	c.grabSet = true
	return nil
}

func (c *Config) processor(str string) error {
	if str == "" || strings.ContainsFunc(str, isSpace) {
		return fmt.Errorf("invalid processor name %q", str)
	}
	c.Processors = append(c.Processors, str)
	return nil
}

func (c *Config) device(str string) error {
	m, err := filepath.Glob(str)
	if err != nil {
		return fmt.Errorf("find devices: %w", err)
	}
	c.Devices = append(c.Devices, m...)
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
