package parser

import (
	"encoding/binary"
	"fmt"

	"github.com/framelog/slp/internal/textenc"
	"github.com/framelog/slp/pkg/core"
)

// MinVersion is the oldest recorder version whose records carry every field
// the decoder reads.
var MinVersion = core.Version{Major: 3, Minor: 13}

// Game-start record layout, relative to the code byte.
const (
	gsVersion        = 0x1
	gsStage          = 0x13
	gsPlayers        = 0x65
	gsPlayerStride   = 0x24
	gsNames          = 0x1A5
	gsNameStride     = 0x1F
	gsConnectCodes   = 0x221
	gsConnectStride  = 0xA
	gsMinLen         = gsPlayers + core.NumPorts*gsPlayerStride
	playerTypeAbsent = 3
)

// ParseGameStart decodes a game-start record, code byte included. offset is
// the record's position in the file and only feeds error reports.
func ParseGameStart(rec []byte, offset int) (*core.GameStart, error) {
	if len(rec) == 0 || rec[0] != EventGameStart {
		return nil, core.Invalid(core.LocGameStart, offset, "missing game start record")
	}
	if len(rec) < gsMinLen {
		return nil, core.Invalid(core.LocGameStart, offset,
			"record of %d bytes shorter than %d", len(rec), gsMinLen)
	}

	gs := &core.GameStart{
		Version: core.Version{
			Major: rec[gsVersion],
			Minor: rec[gsVersion+1],
			Build: rec[gsVersion+2],
		},
		Stage: core.Stage(binary.BigEndian.Uint16(rec[gsStage:])),
	}
	if gs.Version.Less(MinVersion) {
		return nil, fmt.Errorf("version %s below %s: %w", gs.Version, MinVersion, core.ErrOutdatedVersion)
	}

	for port := 0; port < core.NumPorts; port++ {
		b := rec[gsPlayers+port*gsPlayerStride:]
		if b[1] == playerTypeAbsent {
			continue
		}
		c, err := core.CharacterFromExternal(b[0])
		if err != nil {
			return nil, core.Invalid(core.LocGameStart, offset+gsPlayers+port*gsPlayerStride,
				"port %d character", port+1).Wrap(err)
		}
		p := &core.PlayerInfo{
			Character: c,
			Type:      core.PlayerType(b[1]),
			Stocks:    b[2],
			Costume:   b[3],
		}
		if end := gsNames + (port+1)*gsNameStride; end <= len(rec) {
			p.DisplayName = textenc.DecodeName(rec[end-gsNameStride : end])
		}
		if end := gsConnectCodes + (port+1)*gsConnectStride; end <= len(rec) {
			p.ConnectCode = textenc.DecodeName(rec[end-gsConnectStride : end])
		}
		gs.Players[port] = p
	}
	return gs, nil
}
