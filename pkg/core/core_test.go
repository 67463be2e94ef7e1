package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterFromExternal(t *testing.T) {
	tests := []struct {
		id   uint8
		want Character
	}{
		{0, CaptainFalcon},
		{2, Fox},
		{9, Marth},
		{14, Popo},
		{19, Sheik},
		{20, Falco},
		{32, Popo},
	}
	for _, tt := range tests {
		got, err := CharacterFromExternal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "external id %d", tt.id)
	}

	_, err := CharacterFromExternal(33)
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestCharacterFromInternal(t *testing.T) {
	c, err := CharacterFromInternal(uint8(Sandbag))
	require.NoError(t, err)
	assert.Equal(t, Sandbag, c)

	_, err = CharacterFromInternal(uint8(Sandbag) + 1)
	assert.ErrorIs(t, err, ErrUnknownCode)

	assert.Equal(t, "Mr. Game & Watch", MrGameAndWatch.String())
	assert.Equal(t, "Character(200)", Character(200).String())
	assert.True(t, Popo.HasFollower())
	assert.False(t, Nana.HasFollower())
}

func TestSlot(t *testing.T) {
	s := SlotOf(2, true)
	assert.Equal(t, Slot(6), s)
	assert.Equal(t, Port(2), s.Port())
	assert.True(t, s.Follower())
	assert.Equal(t, "P3 follower", s.String())
	assert.Equal(t, "P1", SlotOf(0, false).String())
}

func TestActiveSlots(t *testing.T) {
	gs := GameStart{}
	gs.Players[0] = &PlayerInfo{Character: Fox}
	gs.Players[3] = &PlayerInfo{Character: Popo}
	assert.Equal(t, []Slot{0, 3, 7}, gs.ActiveSlots())
}

func TestVersionLess(t *testing.T) {
	assert.True(t, Version{3, 12, 9}.Less(Version{3, 13, 0}))
	assert.True(t, Version{2, 99, 0}.Less(Version{3, 0, 0}))
	assert.False(t, Version{3, 13, 0}.Less(Version{3, 13, 0}))
	assert.True(t, Version{3, 13, 0}.Less(Version{3, 13, 1}))
	assert.Equal(t, "3.16.0", Version{3, 16, 0}.String())
}

func TestInvalidError(t *testing.T) {
	err := Invalid(LocPostUpdate, 0x40, "record too short").Wrap(ErrUnknownCode)
	wrapped := fmt.Errorf("decode: %w", err)

	assert.ErrorIs(t, wrapped, ErrStructurallyInvalid)
	assert.ErrorIs(t, wrapped, ErrUnknownCode)
	assert.NotErrorIs(t, wrapped, ErrFormatMismatch)
	assert.Equal(t, "post-update at offset 0x40: record too short: unknown code", err.Error())

	loc, ok := LocationOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, LocPostUpdate, loc)

	_, ok = LocationOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestActionState(t *testing.T) {
	std := Standard(StateWait)
	assert.True(t, std.Is(StateWait))
	_, err := std.AsSpecial()
	assert.ErrorIs(t, err, ErrNotSpecial)

	sp := Special(SpecialState{Character: Fox, ID: 19})
	assert.Equal(t, uint16(360), sp.private.Code())
	_, err = sp.AsStandard()
	assert.ErrorIs(t, err, ErrNotStandard)
	got, err := sp.AsSpecial()
	require.NoError(t, err)
	assert.Equal(t, uint8(19), got.ID)
	assert.False(t, sp.Is(StateDeadDown))
}

func TestItemLogForFrame(t *testing.T) {
	log := ItemLog{
		FirstFrame: 10,
		Updates:    []ItemUpdate{{SpawnID: 1}, {SpawnID: 2}, {SpawnID: 3}},
		Index:      []uint32{1, 1, 3},
	}
	assert.Len(t, log.ForFrame(10), 1)
	assert.Empty(t, log.ForFrame(11))
	assert.Equal(t, []ItemUpdate{{SpawnID: 2}, {SpawnID: 3}}, log.ForFrame(12))
	assert.Nil(t, log.ForFrame(9))
	assert.Nil(t, log.ForFrame(13))
}

func TestNotes(t *testing.T) {
	var n Notes
	n.Add(100, 20, "edgeguard")
	n.Add(400, 5, "")
	n.Add(900, 60, "ワンツー")

	require.Equal(t, 3, n.Len())
	assert.Equal(t, "edgeguard", n.Text(0))
	assert.Equal(t, "", n.Text(1))
	assert.Equal(t, "ワンツー", n.Text(2))
	assert.Equal(t, []int32{0, 9, 9}, n.DataIdx)
}

func TestTimestamp(t *testing.T) {
	ts := PackTimestamp(2023, 6, 4, 18, 22, 11)
	assert.Equal(t, 2023, ts.Year())
	assert.Equal(t, 6, ts.Month())
	assert.Equal(t, 4, ts.Day())
	assert.Equal(t, 18, ts.Hour())
	assert.Equal(t, 22, ts.Minute())
	assert.Equal(t, 11, ts.Second())
	assert.Equal(t, "2023-06-04T18:22:11Z", ts.String())
	assert.Equal(t, time.Date(2023, time.June, 4, 18, 22, 11, 0, time.UTC), ts.Time())

	assert.True(t, NullTimestamp.IsNull())
	assert.Equal(t, "null", NullTimestamp.String())
	assert.True(t, NullTimestamp.Time().IsZero())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "ShortHopAerial(Nair) [0,12)",
		Action{Kind: ActionShortHopAerial, Attack: AttackNair, End: 12}.String())
	assert.Equal(t, "GroundWait [4,14)", Action{Kind: ActionGroundWait, Start: 4, End: 14}.String())
	assert.Equal(t, "Fox special 7 [0,4)",
		Action{Kind: ActionSpecial, Special: SpecialAction{Character: Fox, ID: 7}, End: 4}.String())
	assert.Equal(t, ActionWalkLeft+1, ActionWalkRight)
	assert.Equal(t, ActionDashLeft+1, ActionDashRight)
}

func TestSummarize(t *testing.T) {
	g := &Game{
		Start: GameStart{
			Version: Version{3, 16, 0},
			Stage:   Battlefield,
			Players: [NumPorts]*PlayerInfo{
				0: {Character: Fox, Costume: 2, Stocks: 4, DisplayName: "Ren", ConnectCode: "REN#123"},
				3: {Character: Popo, Stocks: 4},
			},
		},
		Info: GameInfo{StartAt: PackTimestamp(2023, 6, 4, 18, 22, 11)},
	}
	g.Frames[0] = make([]Frame, 10)
	g.Frames[3] = make([]Frame, 12)

	s := Summarize("game.slp", g)
	assert.Equal(t, "game.slp", s.Source)
	assert.Equal(t, Battlefield, s.Stage)
	assert.Equal(t, 12, s.Frames)
	assert.Equal(t, uint(0), s.ID)
	require.Len(t, s.Players, 3)
	assert.Equal(t, PlayerSummary{Slot: 0, Character: Fox, Costume: 2, Stocks: 4, DisplayName: "Ren", ConnectCode: "REN#123"}, s.Players[0])
	assert.Equal(t, Popo, s.Players[1].Character)
	assert.Equal(t, Slot(7), s.Players[2].Slot)
	assert.Equal(t, Nana, s.Players[2].Character)
}

func TestParseActionKind(t *testing.T) {
	for k := ActionAttack; k <= ActionSpecial; k++ {
		got, err := ParseActionKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseActionKind("Moonwalk")
	assert.ErrorIs(t, err, ErrUnknownCode)

	a, err := ParseAttack("DashAttack")
	require.NoError(t, err)
	assert.Equal(t, AttackDash, a)
	_, err = ParseAttack("Jab4")
	assert.ErrorIs(t, err, ErrUnknownCode)
}
