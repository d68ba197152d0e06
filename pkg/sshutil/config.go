package sshutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostEntry is what the OpenSSH client config says about a host alias.
type HostEntry struct {
	Alias        string // The name given on the command line
	Hostname     string // The HostName value (actual host to connect to)
	User         string // The User value
	Port         string // The Port value
	IdentityFile string // The IdentityFile value, with ~ expanded
}

// Configured reports whether any setting applied to the alias.
func (h HostEntry) Configured() bool {
	return h.Hostname != "" || h.User != "" || h.Port != "" || h.IdentityFile != ""
}

// Description returns a user-friendly description of the host.
func (h HostEntry) Description() string {
	parts := []string{}

	if h.Hostname != "" && h.Hostname != h.Alias {
		parts = append(parts, h.Hostname)
	}

	if h.User != "" {
		parts = append(parts, "user: "+h.User)
	}

	if h.Port != "" && h.Port != "22" {
		parts = append(parts, "port: "+h.Port)
	}

	if h.IdentityFile != "" {
		parts = append(parts, "key: "+h.IdentityFile)
	}

	if len(parts) == 0 {
		return h.Alias
	}

	return strings.Join(parts, ", ")
}

// UserConfigPath returns the path of ~/.ssh/config.
func UserConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

// ResolveHost looks alias up in ~/.ssh/config.
func ResolveHost(alias string) (HostEntry, error) {
	return ResolveHostFile(UserConfigPath(), alias)
}

// ResolveHostFile looks alias up in the given OpenSSH client config.
// A missing file resolves to an entry with only the alias set.
func ResolveHostFile(configPath, alias string) (HostEntry, error) {
	entry := HostEntry{Alias: alias}

	content, err := preprocessSSHConfig(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return entry, nil // No SSH config is fine
		}
		return entry, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return entry, err
	}

	if hostname, _ := cfg.Get(alias, "HostName"); hostname != "" {
		entry.Hostname = hostname
	}

	if user, _ := cfg.Get(alias, "User"); user != "" {
		entry.User = user
	}

	if port, _ := cfg.Get(alias, "Port"); port != "" {
		entry.Port = port
	}

	if identity, _ := cfg.Get(alias, "IdentityFile"); identity != "" {
		entry.IdentityFile = ExpandPath(identity)
	}

	return entry, nil
}

// preprocessSSHConfig reads the SSH config and returns content up to the
// first Match directive, which ssh_config can't decode.
func preprocessSSHConfig(configPath string) ([]byte, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// ExpandPath replaces a leading ~/ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
