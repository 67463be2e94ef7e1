package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&SlpInfo{},
	&Game{},
	&Player{},
	&Action{},
	&ScanPerformance{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// SlpInfo identifies the instance that populated the database.
type SlpInfo struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:127"`
	Description string `json:"description" gorm:"size:255"`
	SchemaRev   uint16 `json:"schemaRev"`
}

func (*SlpInfo) TableName() string {
	return "slp_infos"
}

// ScanPerformance records writer throughput for one flushed batch.
type ScanPerformance struct {
	Time                time.Time `json:"time" gorm:"index:idx_scanperf_time"`
	GameID              uint      `json:"gameId" gorm:"index:idx_scanperf_game_id"`
	QueuedActions       uint32    `json:"queuedActions"`
	LastWriteDurationMs float32   `json:"lastWriteDurationMs"`
}

func (*ScanPerformance) TableName() string {
	return "scan_performances"
}

////////////////////////
// GAME DATA
////////////////////////

// Game is one decoded replay file.
type Game struct {
	ID        uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	CreatedAt time.Time      `json:"createdAt"`
	Source    string         `json:"source" gorm:"size:512;index:idx_game_source"`
	Version   string         `json:"version" gorm:"size:16"`
	StageID   uint16         `json:"stageId"`
	StageName string         `json:"stageName" gorm:"size:64"`
	StartAt   sql.NullTime   `json:"startAt"`
	Frames    int            `json:"frames"`
	Roster    datatypes.JSON `json:"roster"` // players as JSON array, mirrored from the players table
	Notes     datatypes.JSON `json:"notes"`
	Players   []Player       `json:"players" gorm:"foreignkey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Game) TableName() string {
	return "games"
}

// Player is one tracked slot of a game.
type Player struct {
	GameID      uint   `json:"gameId" gorm:"primarykey;autoIncrement:false"`
	Slot        uint8  `json:"slot" gorm:"primarykey;autoIncrement:false"`
	Port        uint8  `json:"port"`
	Follower    bool   `json:"follower"`
	CharacterID uint8  `json:"characterId"`
	Character   string `json:"character" gorm:"size:32"`
	Costume     uint8  `json:"costume"`
	Stocks      uint8  `json:"stocks"`
	DisplayName string `json:"displayName" gorm:"size:64"`
	ConnectCode string `json:"connectCode" gorm:"size:16;index:idx_player_connect_code"`
}

func (*Player) TableName() string {
	return "players"
}

// Action is one segmented action of a slot timeline.
type Action struct {
	ID             uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	GameID         uint       `json:"gameId" gorm:"index:idx_action_game_slot"`
	Slot           uint8      `json:"slot" gorm:"index:idx_action_game_slot"`
	Kind           string     `json:"kind" gorm:"size:32;index:idx_action_kind"`
	Attack         string     `json:"attack,omitempty" gorm:"size:32"`
	Special        string     `json:"special,omitempty" gorm:"size:64"`
	SpecialID      uint8      `json:"specialId"`
	SpecialOwner   uint8      `json:"specialOwner"` // character id owning the special action
	StartFrame     int        `json:"startFrame"`
	EndFrame       int        `json:"endFrame"`
	StartPosition  geom.Point `json:"startPosition"` // entity position on the first frame
	StartVelocityX float32    `json:"startVelocityX"`
	StartVelocityY float32    `json:"startVelocityY"`
	GroundVelocity float32    `json:"groundVelocity"`
	Facing         string     `json:"facing" gorm:"size:8"`
	Airborne       bool       `json:"airborne"`
}

func (*Action) TableName() string {
	return "actions"
}
