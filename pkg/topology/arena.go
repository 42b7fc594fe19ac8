// Package topology models the network as a central arena owning nodes and
// links by index; every cross-reference (a call's route, a regenerator
// placement) is an integer handle into the arena rather than a pointer
// graph, so a topology clones cheaply for an independent fitness
// evaluation.
package topology

import (
	"fmt"
	"sync"
)

// NodeID and LinkID are arena-owned integer handles.
type NodeID int
type LinkID int

// NodeType is the three-way regeneration capability of a node (§3):
// Transparent nodes never regenerate, Translucent nodes regenerate only
// when the RMSA pipeline needs a segment cut there, and Opaque nodes
// force a segment boundary on every call that passes through.
type NodeType int

const (
	Transparent NodeType = iota
	Translucent
	Opaque
)

func (t NodeType) String() string {
	switch t {
	case Translucent:
		return "translucent"
	case Opaque:
		return "opaque"
	default:
		return "transparent"
	}
}

// Node is a network site, optionally equipped with regenerators.
type Node struct {
	ID                NodeID
	Name              string
	Type              NodeType
	TotalRegenerators int

	inUse           int
	maxSimultaneous int
}

// CanRegenerate reports whether the node has regeneration capability at
// all (Translucent or Opaque); a Transparent node never regenerates,
// whatever its TotalRegenerators count.
func (n *Node) CanRegenerate() bool { return n.Type == Translucent || n.Type == Opaque }

// ForcesRegeneration reports whether every call through the node must
// regenerate there (Opaque's §3 invariant).
func (n *Node) ForcesRegeneration() bool { return n.Type == Opaque }

// AcquireRegenerator reserves one regenerator at the node if one is free.
func (n *Node) AcquireRegenerator() bool {
	if n.inUse >= n.TotalRegenerators {
		return false
	}
	n.inUse++
	if n.inUse > n.maxSimultaneous {
		n.maxSimultaneous = n.inUse
	}
	return true
}

// ReleaseRegenerator frees one regenerator previously acquired at the node.
func (n *Node) ReleaseRegenerator() {
	if n.inUse > 0 {
		n.inUse--
	}
}

// InUse returns the number of regenerators currently held at the node.
func (n *Node) InUse() int { return n.inUse }

// MaxSimultaneous returns the high-water mark of regenerators held at the
// node, the figure the result record's regenerators_max_simultaneous_per_node
// is built from.
func (n *Node) MaxSimultaneous() int { return n.maxSimultaneous }

// Link is a fibre-bearing edge between two nodes, carrying a slot bitmap.
type Link struct {
	ID           LinkID
	From, To     NodeID
	LengthKm     float64
	SpanLengthKm float64

	slots *SlotBitmap
}

// NumSpans returns the number of fibre+inline-amplifier spans the link's
// device chain needs.
func (l *Link) NumSpans() int {
	if l.SpanLengthKm <= 0 {
		return 1
	}
	spans := int(l.LengthKm / l.SpanLengthKm)
	if float64(spans)*l.SpanLengthKm < l.LengthKm {
		spans++
	}
	if spans < 1 {
		spans = 1
	}
	return spans
}

// Slots returns the link's slot bitmap.
func (l *Link) Slots() *SlotBitmap { return l.slots }

// Arena owns every node and link in a topology by index.
type Arena struct {
	Nodes []*Node
	Links []*Link

	adjacency map[NodeID][]LinkID

	hopCacheMu sync.Mutex
	hopCache   map[pathKey][]LinkID
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{adjacency: make(map[NodeID][]LinkID)}
}

// AddNode appends a node and returns its handle. translucent=true is
// shorthand for NodeType Translucent; use AddNodeType for Opaque nodes.
func (a *Arena) AddNode(name string, translucent bool, totalRegenerators int) NodeID {
	t := Transparent
	if translucent {
		t = Translucent
	}
	return a.AddNodeType(name, t, totalRegenerators)
}

// AddNodeType appends a node of an explicit NodeType and returns its
// handle.
func (a *Arena) AddNodeType(name string, t NodeType, totalRegenerators int) NodeID {
	id := NodeID(len(a.Nodes))
	a.Nodes = append(a.Nodes, &Node{
		ID:                id,
		Name:              name,
		Type:              t,
		TotalRegenerators: totalRegenerators,
	})
	return id
}

// AddLink appends an undirected link and returns its handle.
func (a *Arena) AddLink(from, to NodeID, lengthKm, spanLengthKm float64, numSlots int) LinkID {
	id := LinkID(len(a.Links))
	a.Links = append(a.Links, &Link{
		ID:           id,
		From:         from,
		To:           to,
		LengthKm:     lengthKm,
		SpanLengthKm: spanLengthKm,
		slots:        NewSlotBitmap(numSlots),
	})
	a.adjacency[from] = append(a.adjacency[from], id)
	a.adjacency[to] = append(a.adjacency[to], id)
	return id
}

// Node returns the node for a handle.
func (a *Arena) Node(id NodeID) *Node {
	if int(id) < 0 || int(id) >= len(a.Nodes) {
		return nil
	}
	return a.Nodes[id]
}

// Link returns the link for a handle.
func (a *Arena) Link(id LinkID) *Link {
	if int(id) < 0 || int(id) >= len(a.Links) {
		return nil
	}
	return a.Links[id]
}

// LinksAt returns the links incident to a node.
func (a *Arena) LinksAt(n NodeID) []LinkID {
	return a.adjacency[n]
}

// Other returns the endpoint of link l that is not n.
func (l *Link) Other(n NodeID) (NodeID, error) {
	switch n {
	case l.From:
		return l.To, nil
	case l.To:
		return l.From, nil
	default:
		return 0, fmt.Errorf("topology: node %d is not an endpoint of link %d", n, l.ID)
	}
}
