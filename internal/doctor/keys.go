package doctor

import (
	"fmt"
	"os"

	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/pkg/sshutil"
)

// KeyFileCheck verifies an environment's key_file exists and holds a private key.
// Passphrase-protected keys pass; ssh asks for the passphrase itself.
type KeyFileCheck struct {
	Environment string
	Path        string
}

func (c *KeyFileCheck) Name() string     { return "key_file:" + c.Environment }
func (c *KeyFileCheck) Category() string { return CategoryKeys }

func (c *KeyFileCheck) Run() CheckResult {
	err := sshutil.CheckKeyFile(c.Path)

	var encErr *sshutil.EncryptedKeyError
	switch {
	case err == nil:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s: %s", c.Environment, c.Path),
		}
	case errors.As(err, &encErr):
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s: %s (passphrase protected)", c.Environment, c.Path),
		}
	case os.IsNotExist(err):
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: key file %s not found", c.Environment, c.Path),
			Suggestion: "Check key_file for environment " + c.Environment,
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: key file %s is unusable: %v", c.Environment, c.Path, err),
			Suggestion: "key_file must point at a private key, not the .pub half",
		}
	}
}
