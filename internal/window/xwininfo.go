package window

import (
	"bufio"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/bryanchriswhite/TableScout/internal/logger"
)

// XwininfoSource lists windows by parsing `xwininfo -root -tree`.
type XwininfoSource struct {
	command string
	args    []string
	run     func(name string, args ...string) ([]byte, error)
}

// A tree line looks like
//
//	0x1e00007 "Some Title": ("PokerStars.exe" "PokerStars.exe")  806x579+0+0  +637+253
var xwininfoLine = regexp.MustCompile(`^\s+(0x[0-9a-fA-F]+) (.+):\s\("([a-zA-Z0-9._-]+)".*  (\d+)x(\d+)\+-?\d+\+-?\d+  \+(-?\d+)\+(-?\d+)`)

// NewXwininfoSource creates a source backed by the xwininfo binary
func NewXwininfoSource() *XwininfoSource {
	return &XwininfoSource{
		command: "xwininfo",
		args:    []string{"-root", "-tree"},
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// xwininfoAvailable reports whether xwininfo is on PATH
func xwininfoAvailable() bool {
	_, err := exec.LookPath("xwininfo")
	return err == nil
}

// Name returns the source name
func (s *XwininfoSource) Name() string {
	return "xwininfo"
}

// Flavor returns FlavorX11
func (s *XwininfoSource) Flavor() Flavor {
	return FlavorX11
}

// Close is a no-op, every call spawns its own process
func (s *XwininfoSource) Close() error {
	return nil
}

// Windows runs xwininfo once and parses every line of the tree
func (s *XwininfoSource) Windows() ([]RawWindow, error) {
	out, err := s.run(s.command, s.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", s.command, err)
	}
	return ParseXwininfoTree(string(out)), nil
}

// ParseXwininfoTree parses xwininfo tree output, skipping lines that do
// not describe a window.
func ParseXwininfoTree(output string) []RawWindow {
	log := logger.WithComponent("xwininfo")

	windows := make([]RawWindow, 0)
	skipped := 0

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		w, ok := ParseXwininfoLine(scanner.Text())
		if !ok {
			skipped++
			continue
		}
		windows = append(windows, w)
	}

	log.Debug().
		Int("found", len(windows)).
		Int("skipped", skipped).
		Msg("parsed window tree")

	return windows
}

// ParseXwininfoLine decodes one tree line. The geometry fields are the
// client size and its absolute position on the root window.
func ParseXwininfoLine(line string) (RawWindow, bool) {
	m := xwininfoLine.FindStringSubmatch(line)
	if m == nil {
		return RawWindow{}, false
	}

	handle, err := strconv.ParseUint(m[1], 0, 64)
	if err != nil {
		return RawWindow{}, false
	}

	nums := make([]int, 4)
	for i, s := range m[4:8] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return RawWindow{}, false
		}
		nums[i] = n
	}

	return RawWindow{
		Handle:     handle,
		Title:      unquoteTitle(m[2]),
		Executable: m[3],
		Outer: Rect{
			X:      nums[2],
			Y:      nums[3],
			Width:  nums[0],
			Height: nums[1],
		},
		Frame: clientFrame,
	}, true
}

// unquoteTitle drops every double quote from a window name. xwininfo does
// not escape quotes inside names, so the outer pair cannot be told apart.
// Unnamed windows are printed as (has no name) and kept verbatim.
func unquoteTitle(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
