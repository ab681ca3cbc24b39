package feather

import "github.com/google/uuid"

// Handle identifies a body owned by a World. It is a thin wrapper over a
// uuid string rather than an index+generation pair: a world-scoped random
// identity needs no generation counter to detect stale reuse.
type Handle string

func newHandle() Handle {
	return Handle(uuid.NewString())
}

const (
	// MaxLayers bounds the layer table to what fits in a uint64 bitmask.
	MaxLayers = 64
	// MaxLayerNameLength truncates any layer name longer than this.
	MaxLayerNameLength = 50
	// noneLayer is the reserved name meaning "no layer assigned".
	noneLayer = "NONE"
)

// LayerTable is a string-named collision-layer matrix: up to MaxLayers
// named layers and a symmetric allow/deny rule between any pair.
type LayerTable struct {
	names  []string
	rules  [MaxLayers][MaxLayers]bool
	logger Logger
}

// NewLayerTable builds an empty layer table. A nil logger falls back to
// a no-op sink.
func NewLayerTable(logger Logger) *LayerTable {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &LayerTable{logger: logger}
}

// AddLayer registers a new named layer, clamping overlong names to
// MaxLayerNameLength. Returns false (and logs) if the table is full, the
// name is the reserved "NONE", or the name is already in use.
func (lt *LayerTable) AddLayer(name string) bool {
	if len(lt.names) >= MaxLayers {
		lt.logger.Errorf("cannot add layer %q: max layer count %d reached", name, MaxLayers)
		return false
	}
	if name == noneLayer {
		lt.logger.Errorf("cannot add layer %q: name is reserved", name)
		return false
	}
	if len(name) > MaxLayerNameLength {
		name = name[:MaxLayerNameLength]
	}
	if lt.indexOf(name) >= 0 {
		lt.logger.Errorf("cannot add layer %q: name already in use", name)
		return false
	}

	lt.names = append(lt.names, name)
	return true
}

// RemoveLayer deletes a layer by name, compacting its slot with the
// table's last layer. Its collision rules are cleared along with it.
func (lt *LayerTable) RemoveLayer(name string) bool {
	idx := lt.indexOf(name)
	if idx < 0 {
		lt.logger.Errorf("cannot remove layer %q: does not exist", name)
		return false
	}

	last := len(lt.names) - 1
	lt.names[idx] = lt.names[last]
	lt.names = lt.names[:last]

	for i := 0; i < MaxLayers; i++ {
		lt.rules[idx][i] = lt.rules[last][i]
		lt.rules[i][idx] = lt.rules[i][last]
	}
	// The moved layer keeps its own self-rule, not its rule with the removed one.
	lt.rules[idx][idx] = lt.rules[last][last]
	lt.rules[last] = [MaxLayers]bool{}
	for i := range lt.rules {
		lt.rules[i][last] = false
	}
	return true
}

func (lt *LayerTable) indexOf(name string) int {
	for i, n := range lt.names {
		if n == name {
			return i
		}
	}
	return -1
}

// SetRule enables or disables collision between two named layers.
// Returns false (and logs) if either name does not exist.
func (lt *LayerTable) SetRule(a, b string, allowed bool) bool {
	ia, ib := lt.indexOf(a), lt.indexOf(b)
	if ia < 0 {
		lt.logger.Errorf("cannot set collision rule: layer %q does not exist", a)
		return false
	}
	if ib < 0 {
		lt.logger.Errorf("cannot set collision rule: layer %q does not exist", b)
		return false
	}
	lt.rules[ia][ib] = allowed
	lt.rules[ib][ia] = allowed
	return true
}

// CanCollide reports whether two named layers are allowed to collide.
// Unknown layer names log and report false.
func (lt *LayerTable) CanCollide(a, b string) bool {
	ia, ib := lt.indexOf(a), lt.indexOf(b)
	if ia < 0 {
		lt.logger.Errorf("cannot check collision rule: layer %q does not exist", a)
		return false
	}
	if ib < 0 {
		lt.logger.Errorf("cannot check collision rule: layer %q does not exist", b)
		return false
	}
	return lt.rules[ia][ib]
}
