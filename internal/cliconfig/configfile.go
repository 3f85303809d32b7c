package cliconfig

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadConfigArgs reads boo's config file and returns parsed arguments to
// prepend to os.Args. Config file location: $BOO_CONFIG_PATH, or
// ~/.boorc. Format: one flag per line, # comments, empty lines
// ignored. Returns nil if no config file is found.
func LoadConfigArgs() []string {
	path := os.Getenv("BOO_CONFIG_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".boorc")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var args []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	return args
}
