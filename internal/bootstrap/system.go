package bootstrap

import (
	"context"
	"os"
	"os/exec"
)

// System is the seam between the executor and the host it mutates. The
// real implementation shells out and touches the filesystem; tests install
// a recorder fake.
type System interface {
	RunCommand(ctx context.Context, argv []string) ([]byte, error)
	WriteFile(path string, data []byte, mode os.FileMode) error
	ReadFile(path string) ([]byte, error)
	MkdirAll(path string, mode os.FileMode) error
	Remove(path string) error
}

type hostSystem struct{}

// NewHostSystem returns the System backed by the local machine. Callers
// need administrative privilege for the system paths the profiles target.
func NewHostSystem() System { return hostSystem{} }

func (hostSystem) RunCommand(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}

func (hostSystem) WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	// WriteFile only applies the mode on create; enforce it on rewrite too.
	return os.Chmod(path, mode)
}

func (hostSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (hostSystem) MkdirAll(path string, mode os.FileMode) error { return os.MkdirAll(path, mode) }

func (hostSystem) Remove(path string) error { return os.Remove(path) }
