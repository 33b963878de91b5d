//go:build linux || freebsd || openbsd || netbsd

package window

import (
	"fmt"
	"strings"

	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/godbus/dbus/v5"
)

// KWin D-Bus constants
const (
	kwinService       = "org.kde.KWin"
	kwinPath          = "/KWin"
	kwinInterface     = "org.kde.KWin"
	windowsRunnerPath = "/WindowsRunner"
	krunnerInterface  = "org.kde.krunner1"
)

// KWinSource enumerates windows through KWin's D-Bus interface, for
// Plasma Wayland sessions where X11 only sees XWayland clients.
type KWinSource struct {
	conn *dbus.Conn
}

// NewKWinSource connects to the session bus and checks that KWin is present
func NewKWinSource() (*KWinSource, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to list D-Bus names: %w", err)
	}

	for _, name := range names {
		if name == kwinService {
			logger.WithComponent("kwin-source").Debug().Msg("Connected to KWin D-Bus service")
			return &KWinSource{conn: conn}, nil
		}
	}

	conn.Close()
	return nil, fmt.Errorf("KWin service not found on D-Bus")
}

// Name returns the source name
func (s *KWinSource) Name() string {
	return "kwin"
}

// Flavor returns FlavorX11; KWin titles follow the same rules as X11 ones
func (s *KWinSource) Flavor() Flavor {
	return FlavorX11
}

// Close closes the D-Bus connection
func (s *KWinSource) Close() error {
	return s.conn.Close()
}

// Windows lists windows via the KRunner WindowsRunner plugin. An empty
// query returns every window; each match is then resolved with getWindowInfo.
func (s *KWinSource) Windows() ([]RawWindow, error) {
	log := logger.WithComponent("kwin-source")

	// Match returns a(sssida{sv}): id, text, icon, type, relevance, properties
	var rawMatches [][]interface{}
	obj := s.conn.Object(kwinService, windowsRunnerPath)
	if err := obj.Call(krunnerInterface+".Match", 0, "").Store(&rawMatches); err != nil {
		return nil, fmt.Errorf("failed to call Match: %w", err)
	}

	windows := make([]RawWindow, 0, len(rawMatches))
	for _, rawMatch := range rawMatches {
		if len(rawMatch) < 2 {
			continue
		}
		rawID, ok := rawMatch[0].(string)
		if !ok {
			continue
		}
		text, _ := rawMatch[1].(string)

		// Format is like "0_{dc80ff04-3245-4d9b-b9a8-1582640d39e1}"
		uuid := ""
		if start, end := strings.Index(rawID, "{"), strings.Index(rawID, "}"); start >= 0 && end > start {
			uuid = rawID[start : end+1]
		}

		w := RawWindow{
			Handle: hashString(rawID),
			Title:  text,
			Frame:  decoratedFrame,
		}
		if uuid != "" {
			if err := s.fillWindowInfo(uuid, &w); err != nil {
				log.Debug().Str("uuid", uuid).Err(err).Msg("getWindowInfo failed")
			}
		}
		if w.Title == "" {
			continue
		}
		windows = append(windows, w)
	}

	log.Debug().Int("count", len(windows)).Msg("listed windows")
	return windows, nil
}

// fillWindowInfo reads caption, resource name and frame geometry for uuid
func (s *KWinSource) fillWindowInfo(uuid string, w *RawWindow) error {
	var result map[string]dbus.Variant
	obj := s.conn.Object(kwinService, kwinPath)
	if err := obj.Call(kwinInterface+".getWindowInfo", 0, uuid).Store(&result); err != nil {
		return err
	}

	if v, ok := result["caption"]; ok {
		if caption, ok := v.Value().(string); ok && caption != "" {
			w.Title = caption
		}
	}
	// KWin has no process path; Wine clients report their lower-cased
	// Windows executable as resource name.
	w.Executable = processIdentity{
		Instance: variantString(result["resourceName"]),
		Class:    variantString(result["resourceClass"]),
	}.executable()

	w.Outer = Rect{
		X:      variantInt(result["x"]),
		Y:      variantInt(result["y"]),
		Width:  variantInt(result["width"]),
		Height: variantInt(result["height"]),
	}
	return nil
}

func variantString(v dbus.Variant) string {
	str, _ := v.Value().(string)
	return str
}

func variantInt(v dbus.Variant) int {
	switch n := v.Value().(type) {
	case float64:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint32:
		return int(n)
	}
	return 0
}

// hashString turns KWin's string window ids into stable numeric handles
func hashString(s string) uint64 {
	var hash uint64 = 5381
	for i := 0; i < len(s); i++ {
		hash = ((hash << 5) + hash) + uint64(s[i])
	}
	return hash
}
