//go:build !linux

package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics is a no-op without a Linux virtual terminal.
func EnterGraphics(l logger) (restore func()) {
	if l != nil {
		l.Infof("tty", "console mode not supported on this platform")
	}
	return func() {}
}
