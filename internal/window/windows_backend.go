//go:build windows

package window

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/bryanchriswhite/TableScout/internal/logger"
	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
	procGetWindowRect  = user32.NewProc("GetWindowRect")
)

// Callbacks created with NewCallback are never released, so a single one
// is shared and guarded by enumMu.
var (
	enumMu       sync.Mutex
	enumHandles  []windows.HWND
	enumCallback = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1
	})
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

// Win32Source enumerates top-level windows with EnumWindows
type Win32Source struct{}

// NewWin32Source creates a Win32 window source
func NewWin32Source() *Win32Source {
	return &Win32Source{}
}

// Name returns the source name
func (s *Win32Source) Name() string {
	return "windows"
}

// Flavor returns FlavorWin32
func (s *Win32Source) Flavor() Flavor {
	return FlavorWin32
}

// Close is a no-op
func (s *Win32Source) Close() error {
	return nil
}

// Windows enumerates handles first, then fetches title, rectangle and
// executable for each one with separate calls.
func (s *Win32Source) Windows() ([]RawWindow, error) {
	log := logger.WithComponent("win32-source")

	handles, err := enumerateHandles()
	if err != nil {
		return nil, err
	}

	windows := make([]RawWindow, 0, len(handles))
	for _, hwnd := range handles {
		title := windowText(hwnd)
		if title == "" {
			continue
		}

		outer, err := windowRect(hwnd)
		if err != nil {
			log.Debug().Uint64("hwnd", uint64(hwnd)).Err(err).Msg("GetWindowRect failed")
			continue
		}

		windows = append(windows, RawWindow{
			Handle:     uint64(hwnd),
			Title:      title,
			Executable: windowExecutable(hwnd),
			Outer:      outer,
			Frame:      decoratedFrame,
		})
	}

	log.Debug().Int("count", len(windows)).Msg("listed windows")
	return windows, nil
}

func enumerateHandles() ([]windows.HWND, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	if err := windows.EnumWindows(enumCallback, nil); err != nil {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}

	handles := make([]windows.HWND, len(enumHandles))
	copy(handles, enumHandles)
	return handles, nil
}

func windowText(hwnd windows.HWND) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func windowRect(hwnd windows.HWND) (Rect, error) {
	var r winRect
	ok, _, err := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return Rect{}, err
	}
	return Rect{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}, nil
}

func windowExecutable(hwnd windows.HWND) string {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil || pid == 0 {
		return ""
	}

	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}
