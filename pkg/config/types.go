package config

// Config is the on-disk configuration file.
type Config struct {
	// SSHCommand is the ssh client invocation, split with shell quoting rules
	// (e.g. `ssh -F ~/.ssh/work_config`).
	SSHCommand string `yaml:"ssh_command"`
	LogFile    string `yaml:"log_file"`
	Verbose    bool   `yaml:"verbose"`
}

// Default file locations
const (
	ConfigFilePath    = "~/.muxwarden/config.yaml"
	DefaultLogFile    = "~/.muxwarden/muxwarden.log"
	DefaultSSHCommand = "ssh"
)
