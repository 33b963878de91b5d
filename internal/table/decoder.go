package table

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Decoder builds an Identity from a window title using one site's
// title grammar.
type Decoder interface {
	Decode(c Candidate) (Identity, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(c Candidate) (Identity, error)

// Decode calls f(c).
func (f DecoderFunc) Decode(c Candidate) (Identity, error) {
	return f(c)
}

// Options tune a decoder for one site.
type Options struct {
	// RequireGame turns a missing game token into a DecodeError.
	RequireGame bool
}

// Factory creates a decoder for the given options.
type Factory func(opts Options) Decoder

// Built-in decoder kinds.
const (
	KindGeneric  = "generic"
	KindMetadata = "metadata"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	generic := func(Options) Decoder { return GenericDecoder{} }
	metadata := func(opts Options) Decoder { return MetadataDecoder{RequireGame: opts.RequireGame} }

	Register(KindGeneric, generic)
	Register(KindMetadata, metadata)

	// Names used by older configuration files.
	Register("fulltilt", generic)
	Register("pokerstars", metadata)
}

// Register makes a decoder kind available to site configuration.
// Registering an existing kind replaces it.
func Register(kind string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(kind)] = f
}

// NewDecoder returns a decoder of the given kind.
func NewDecoder(kind string, opts Options) (Decoder, error) {
	registryMu.RLock()
	f, ok := registry[strings.ToLower(kind)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown decoder %q (known: %s)", kind, strings.Join(Kinds(), ", "))
	}
	return f(opts), nil
}

// Kinds lists registered decoder kinds in sorted order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
