package core

import "fmt"

// Ports and slots. A slot is a tracked timeline: slots 0-3 are the port
// leaders, slots 4-7 the follower of the same port.
const (
	NumPorts = 4
	NumSlots = 8
)

// Port is a fixed player slot in a match.
type Port uint8

// Slot indexes one of the eight per-entity timelines.
type Slot uint8

// SlotOf returns the slot holding the leader or follower of port.
func SlotOf(port Port, follower bool) Slot {
	if follower {
		return Slot(port) + NumPorts
	}
	return Slot(port)
}

// Port returns the port owning the slot.
func (s Slot) Port() Port { return Port(s % NumPorts) }

// Follower reports whether the slot tracks a follower entity.
func (s Slot) Follower() bool { return s >= NumPorts }

func (s Slot) String() string {
	if s.Follower() {
		return fmt.Sprintf("P%d follower", s.Port()+1)
	}
	return fmt.Sprintf("P%d", s.Port()+1)
}

// Version is the recorder version triple.
type Version struct {
	Major uint8
	Minor uint8
	Build uint8
}

// Less reports whether v is older than o, comparing major, minor and build.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Build < o.Build
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// PlayerType is the per-port controller kind from the game-start record.
type PlayerType uint8

const (
	PlayerHuman PlayerType = iota
	PlayerCPU
	PlayerDemo
	PlayerEmpty
)

// PlayerInfo describes an occupied port at game start.
type PlayerInfo struct {
	Character   Character
	Costume     uint8
	Type        PlayerType
	Stocks      uint8
	DisplayName string
	ConnectCode string
}

// GameStart holds the per-file constants from the game-start record.
// Players[i] is nil for an absent port.
type GameStart struct {
	Version Version
	Stage   Stage
	Players [NumPorts]*PlayerInfo
}

// ActiveSlots lists every slot that carries a timeline in this game, in
// slot order.
func (g *GameStart) ActiveSlots() []Slot {
	var slots []Slot
	for port, p := range g.Players {
		if p != nil {
			slots = append(slots, Slot(port))
		}
	}
	for port, p := range g.Players {
		if p != nil && p.Character.HasFollower() {
			slots = append(slots, SlotOf(Port(port), true))
		}
	}
	return slots
}

// GameInfo carries the footer metadata.
type GameInfo struct {
	StartAt Timestamp
	// Duration is the declared number of frames; zero when absent.
	Duration int
	Notes    Notes
}

// Game is a fully decoded replay.
type Game struct {
	Start  GameStart
	Info   GameInfo
	Frames [NumSlots][]Frame
	Items  ItemLog
	// Stage is nil unless the stage emits auxiliary per-frame data.
	Stage *StageInfo
}

// FrameCount returns the length of the longest slot timeline.
func (g *Game) FrameCount() int {
	n := 0
	for _, f := range g.Frames {
		if len(f) > n {
			n = len(f)
		}
	}
	return n
}
