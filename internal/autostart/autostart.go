package autostart

import (
	"errors"
	"fmt"
	"runtime"
)

const serviceName = "dropdate"

var ErrUnsupported = errors.New("autostart is not supported on this platform")

type AutoStarter interface {
	Install(execPath string) error
	Uninstall() error
	IsInstalled() (bool, error)
}

func New() AutoStarter {
	switch runtime.GOOS {
	case "windows":
		return &WindowsAutoStarter{}
	case "linux":
		return &LinuxAutoStarter{}
	default:
		return &UnsupportedAutoStarter{}
	}
}

type UnsupportedAutoStarter struct{}

func (u *UnsupportedAutoStarter) Install(_ string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}

func (u *UnsupportedAutoStarter) Uninstall() error {
	return fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}

func (u *UnsupportedAutoStarter) IsInstalled() (bool, error) {
	return false, nil
}
