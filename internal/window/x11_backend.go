//go:build linux || freebsd || openbsd || netbsd

package window

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/shirou/gopsutil/process"
)

// X11Source talks to the X server directly instead of spawning xwininfo
type X11Source struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

// NewX11Source connects to the X server named by $DISPLAY
func NewX11Source() (*X11Source, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	return &X11Source{
		xu:   xu,
		root: xu.RootWin(),
	}, nil
}

// Name returns the source name
func (s *X11Source) Name() string {
	return "x11"
}

// Flavor returns FlavorX11
func (s *X11Source) Flavor() Flavor {
	return FlavorX11
}

// Close closes the X11 connection
func (s *X11Source) Close() error {
	s.xu.Conn().Close()
	return nil
}

// Windows returns all managed windows using EWMH _NET_CLIENT_LIST with QueryTree fallback
func (s *X11Source) Windows() ([]RawWindow, error) {
	log := logger.WithComponent("x11-source")

	ids, err := ewmh.ClientListGet(s.xu)
	if err != nil || len(ids) == 0 {
		if err != nil {
			log.Debug().Err(err).Msg("EWMH client list unavailable, falling back to QueryTree")
		}
		tree, err := xproto.QueryTree(s.xu.Conn(), s.root).Reply()
		if err != nil {
			return nil, fmt.Errorf("failed to query window tree: %w", err)
		}
		ids = tree.Children
	}

	windows := make([]RawWindow, 0, len(ids))
	for _, id := range ids {
		w, err := s.windowInfo(id)
		if err != nil {
			log.Debug().Uint32("winID", uint32(id)).Err(err).Msg("failed to get window info")
			continue
		}
		if w.Title == "" {
			continue
		}
		windows = append(windows, w)
	}

	log.Debug().Int("count", len(windows)).Msg("listed windows")
	return windows, nil
}

// windowInfo reads title, owning executable and client geometry of win
func (s *X11Source) windowInfo(win xproto.Window) (RawWindow, error) {
	w := RawWindow{
		Handle: uint64(win),
		Frame:  clientFrame,
	}

	geom, err := xwindow.New(s.xu, win).Geometry()
	if err != nil {
		return w, fmt.Errorf("failed to get geometry: %w", err)
	}
	w.Outer = Rect{Width: geom.Width(), Height: geom.Height()}

	// Geometry is relative to the parent (usually a WM frame), so translate
	// the origin to root coordinates.
	pos, err := xproto.TranslateCoordinates(s.xu.Conn(), win, s.root, 0, 0).Reply()
	if err == nil {
		w.Outer.X = int(pos.DstX)
		w.Outer.Y = int(pos.DstY)
	} else {
		w.Outer.X = geom.X()
		w.Outer.Y = geom.Y()
	}

	if name, err := ewmh.WmNameGet(s.xu, win); err == nil && name != "" {
		w.Title = name
	} else if name, err := icccm.WmNameGet(s.xu, win); err == nil {
		w.Title = name
	}

	w.Executable = s.executable(win)
	return w, nil
}

// executable identifies the owning program from _NET_WM_PID and WM_CLASS.
func (s *X11Source) executable(win xproto.Window) string {
	var owner processIdentity

	if pid, err := ewmh.WmPidGet(s.xu, win); err == nil && pid > 0 {
		if p, err := process.NewProcess(int32(pid)); err == nil {
			owner.Exe, _ = p.Exe()
			if isWineLoader(owner.Exe) {
				owner.Cmdline, _ = p.CmdlineSlice()
			}
		}
	}

	if class, err := icccm.WmClassGet(s.xu, win); err == nil {
		owner.Instance = class.Instance
		owner.Class = class.Class
	}
	return owner.executable()
}
