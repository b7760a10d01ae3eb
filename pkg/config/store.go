package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SSHCommand: DefaultSSHCommand,
		LogFile:    DefaultLogFile,
	}
}

// expandHomeDir replaces the leading ~ with the user's home directory
func expandHomeDir(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}

	// Replace the ~ with the home directory
	return filepath.Join(home, path[1:]), nil
}

// Load reads the configuration at path, falling back to ConfigFilePath when
// path is empty. A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigFilePath
	}
	expandedPath, err := expandHomeDir(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to resolve config path")
	}

	cfg := Default()
	data, err := os.ReadFile(expandedPath)
	if os.IsNotExist(err) {
		return cfg.resolve()
	} else if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %s", expandedPath)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to unmarshal config file %s", expandedPath)
	}
	return cfg.resolve()
}

// resolve fills blanks with defaults, expands paths and validates the result.
func (c Config) resolve() (Config, error) {
	if strings.TrimSpace(c.SSHCommand) == "" {
		c.SSHCommand = DefaultSSHCommand
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	logFile, err := expandHomeDir(c.LogFile)
	if err != nil {
		return Config{}, err
	}
	c.LogFile = logFile

	if _, err := c.SSHArgv(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SSHArgv splits SSHCommand into the program and its leading arguments.
func (c Config) SSHArgv() ([]string, error) {
	argv, err := shellquote.Split(c.SSHCommand)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid ssh_command %q", c.SSHCommand)
	}
	if len(argv) == 0 {
		return nil, errors.Errorf("invalid ssh_command %q: empty", c.SSHCommand)
	}
	for i, arg := range argv {
		if argv[i], err = expandHomeDir(arg); err != nil {
			return nil, err
		}
	}
	return argv, nil
}
