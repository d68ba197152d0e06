package sshutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// EncryptedKeyError is returned when an SSH key requires a passphrase.
type EncryptedKeyError struct {
	Path string
}

func (e *EncryptedKeyError) Error() string {
	return fmt.Sprintf("SSH key at %s is encrypted (passphrase protected)", e.Path)
}

// CheckKeyFile reads a private key and makes sure it parses.
// Returns EncryptedKeyError if the key requires a passphrase; the ssh client
// will ask for it, so callers usually treat that as usable.
func CheckKeyFile(keyPath string) error {
	path := ExpandPath(keyPath)

	key, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if _, err := ssh.ParsePrivateKey(key); err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) || isEncryptedPEM(key) {
			return &EncryptedKeyError{Path: path}
		}
		return err
	}

	return nil
}

// isEncryptedPEM checks if PEM data contains encryption markers.
func isEncryptedPEM(data []byte) bool {
	return bytes.Contains(data, []byte("Proc-Type: 4,ENCRYPTED"))
}
