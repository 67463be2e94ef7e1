package core

// FrameBias converts the engine's signed frame counter, which starts at -123,
// into a zero-based frame index.
const FrameBias = 123

// FrameIndex converts an engine frame counter to a zero-based index.
func FrameIndex(counter int32) int {
	return int(counter) + FrameBias
}

// Direction is the facing direction of an entity.
type Direction uint8

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Vector is a 2D position or velocity.
type Vector struct {
	X float32
	Y float32
}

// Inputs is the controller state carried by a pre-update.
type Inputs struct {
	Buttons uint16
	StickX  float32
	StickY  float32
	CStickX float32
	CStickY float32
	Trigger float32
}

// Frame is the merged pre- and post-update record for one slot on one
// engine frame.
type Frame struct {
	Character       Character
	Direction       Direction
	Position        Vector
	Velocity        Vector
	HitVelocity     Vector
	GroundVelocityX float32
	ActionStateCode uint16
	State           ActionState
	AnimationFrame  float32
	Inputs          Inputs

	Percent          float32
	ShieldSize       float32
	Stocks           uint8
	LastAttackLanded uint8
	LastHitBy        uint8
	HitstunMisc      float32
	Hitlag           float32
	Flags            [5]byte
	Airborne         bool
	LastGroundID     uint16
}

// Kinematics is the subset of a frame describing where an entity is and how
// it moves.
type Kinematics struct {
	Position        Vector
	Velocity        Vector
	GroundVelocityX float32
	Direction       Direction
	Airborne        bool
}

// Kinematics extracts the kinematic state of the frame.
func (f *Frame) Kinematics() Kinematics {
	return Kinematics{
		Position:        f.Position,
		Velocity:        f.Velocity,
		GroundVelocityX: f.GroundVelocityX,
		Direction:       f.Direction,
		Airborne:        f.Airborne,
	}
}

// ItemUpdate is one item-update event.
type ItemUpdate struct {
	Frame      int
	Type       uint16
	State      uint8
	Direction  float32
	Velocity   Vector
	Position   Vector
	Damage     uint16
	Expiration float32
	SpawnID    uint32
	Misc       [4]uint8
	Owner      int8
}

// ItemLog is the flat item log with a per-frame index. Index[i] is the log
// length as of frame FirstFrame+i, so the items of that frame are
// Updates[Index[i-1]:Index[i]].
type ItemLog struct {
	FirstFrame int
	Updates    []ItemUpdate
	Index      []uint32
}

// ForFrame returns the items recorded on frame index f.
func (l *ItemLog) ForFrame(f int) []ItemUpdate {
	i := f - l.FirstFrame
	if i < 0 || i >= len(l.Index) {
		return nil
	}
	start := uint32(0)
	if i > 0 {
		start = l.Index[i-1]
	}
	return l.Updates[start:l.Index[i]]
}

// Platform identifies one of the two moving Fountain of Dreams platforms.
type Platform uint8

const (
	PlatformRight Platform = iota
	PlatformLeft
)

// PlatformHeight is one Fountain of Dreams platform sample.
type PlatformHeight struct {
	Frame    int
	Platform Platform
	Height   float32
}

// Transformation is a Pokémon Stadium transformation id.
type Transformation uint16

const (
	TransformFire   Transformation = 3
	TransformGrass  Transformation = 4
	TransformNormal Transformation = 5
	TransformRock   Transformation = 6
	TransformWater  Transformation = 9
)

// ValidTransformation reports whether id is a recognized transformation.
func ValidTransformation(id uint16) bool {
	switch Transformation(id) {
	case TransformFire, TransformGrass, TransformNormal, TransformRock, TransformWater:
		return true
	}
	return false
}

// StadiumTransformation is one Pokémon Stadium transformation event.
type StadiumTransformation struct {
	Frame          int
	Phase          uint16
	Transformation Transformation
}

// StageKind tags which StageInfo variant is populated.
type StageKind uint8

const (
	StageFountain StageKind = iota + 1
	StageStadium
)

// StageInfo is the auxiliary per-frame data emitted by two stages. Exactly
// one of the slices is used, as selected by Kind.
type StageInfo struct {
	Kind            StageKind
	Platforms       []PlatformHeight
	Transformations []StadiumTransformation
}
