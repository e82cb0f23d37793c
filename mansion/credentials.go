package mansion

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/shelfapi"
)

// read+write for owner, no permissions for others
const keyFileMode = 0600

const environmentTokenVariable = "SHELF_API_KEY"

// HasSavedCredentials reports whether a bearer token is available,
// either from the environment or the key file.
func (ctx *Context) HasSavedCredentials() bool {
	if os.Getenv(environmentTokenVariable) != "" {
		return true
	}

	_, err := os.Lstat(ctx.Identity)
	return !os.IsNotExist(err)
}

// AuthenticatedClient builds an API client from the saved credentials.
// When there are none, it fails with CodeUnauthenticated rather than
// making calls doomed to be rejected.
func (ctx *Context) AuthenticatedClient() (*shelfapi.Client, error) {
	if envToken := os.Getenv(environmentTokenVariable); envToken != "" {
		return ctx.NewClient(envToken), nil
	}

	token, err := readKeyFile(ctx.Identity)
	if err != nil {
		return nil, errors.Wrap(err, "reading key file")
	}

	if token == "" {
		return nil, errors.WithStack(&shelfapi.APIError{
			Code:     shelfapi.CodeUnauthenticated,
			Messages: []string{"no saved credentials, run `shelf login` first"},
		})
	}

	return ctx.NewClient(token), nil
}

// SaveCredentials writes the bearer token to the key file.
func (ctx *Context) SaveCredentials(token string) error {
	err := os.MkdirAll(filepath.Dir(ctx.Identity), os.FileMode(0755))
	if err != nil {
		return errors.WithStack(err)
	}

	err = ioutil.WriteFile(ctx.Identity, []byte(token), os.FileMode(keyFileMode))
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// ForgetCredentials removes the key file, if any.
func (ctx *Context) ForgetCredentials() error {
	err := os.Remove(ctx.Identity)
	if err != nil && !os.IsNotExist(err) {
		return errors.WithStack(err)
	}
	return nil
}

func readKeyFile(path string) (string, error) {
	stats, err := os.Lstat(path)
	if err != nil && os.IsNotExist(err) {
		// no key file
		return "", nil
	}

	if stats != nil && stats.Mode()&077 > 0 && runtime.GOOS != "windows" {
		// windows won't let you 0600, it's ACL-based there
		comm.Warnf("Key file had wrong permissions (%#o), resetting to %#o", stats.Mode()&0777, keyFileMode)
		err = os.Chmod(path, keyFileMode)
		if err != nil {
			comm.Warnf("Couldn't chmod key file: %s", err)
		}
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.WithStack(err)
	}

	return strings.TrimSpace(string(buf)), nil
}
