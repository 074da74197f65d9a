//go:build linux

package terminal

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

// tcgetsEmbedded covers embedded Linux variants (routers, IoT) whose
// ioctl number differs from the mainstream TCGETS.
const tcgetsEmbedded = 0x5400

// isTerminal checks if fd is a terminal on Linux.
func isTerminal(fd uintptr) bool {
	if _, err := unix.IoctlGetTermios(int(fd), unix.TCGETS); err == nil {
		return true
	}
	if isEmbeddedArch() {
		if _, err := unix.IoctlGetTermios(int(fd), tcgetsEmbedded); err == nil {
			return true
		}
	}
	return false
}

func isEmbeddedArch() bool {
	switch runtime.GOARCH {
	case "arm", "arm64", "mips", "mipsle", "mips64", "mips64le":
		return true
	default:
		return false
	}
}

// enableANSI is a no-op on Linux (ANSI is natively supported).
func enableANSI() bool {
	return true
}

// listenForSignals handles SIGWINCH (resize) and SIGINT/SIGTERM (stop) on
// Linux, identical in shape to the macOS/BSD handler.
func listenForSignals(ctx context.Context, handler *SignalHandler) {
	resizeCh := make(chan os.Signal, 1)
	stopCh := make(chan os.Signal, 1)

	signal.Notify(resizeCh, syscall.SIGWINCH)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(resizeCh)
	defer signal.Stop(stopCh)

	for {
		select {
		case <-ctx.Done():
			if handler.onStop != nil {
				handler.onStop()
			}
			return
		case <-handler.stopCh:
			return
		case <-resizeCh:
			if handler.onResize != nil {
				handler.onResize()
			}
		case <-stopCh:
			if handler.onStop != nil {
				handler.onStop()
			}
			return
		}
	}
}
