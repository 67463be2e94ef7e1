package core

import "fmt"

// Character is the engine's internal character id, as carried by every
// post-update. Zelda and Sheik are distinct characters here, as are the two
// Ice Climbers.
type Character uint8

const (
	Mario Character = iota
	Fox
	CaptainFalcon
	DonkeyKong
	Kirby
	Bowser
	Link
	Sheik
	Ness
	Peach
	Popo
	Nana
	Pikachu
	Samus
	Yoshi
	Jigglypuff
	Mewtwo
	Luigi
	Marth
	Zelda
	YoungLink
	DrMario
	Falco
	Pichu
	MrGameAndWatch
	Ganondorf
	Roy
	MasterHand
	CrazyHand
	WireframeMale
	WireframeFemale
	GigaBowser
	Sandbag
)

var characterNames = [...]string{
	"Mario", "Fox", "Captain Falcon", "Donkey Kong", "Kirby", "Bowser", "Link",
	"Sheik", "Ness", "Peach", "Popo", "Nana", "Pikachu", "Samus", "Yoshi",
	"Jigglypuff", "Mewtwo", "Luigi", "Marth", "Zelda", "Young Link", "Dr. Mario",
	"Falco", "Pichu", "Mr. Game & Watch", "Ganondorf", "Roy", "Master Hand",
	"Crazy Hand", "Wireframe Male", "Wireframe Female", "Giga Bowser", "Sandbag",
}

// externalToInternal maps the character-select ids used by the game-start
// record onto internal ids. Ice Climbers select as Popo.
var externalToInternal = [...]Character{
	CaptainFalcon, DonkeyKong, Fox, MrGameAndWatch, Kirby, Bowser, Link, Luigi,
	Mario, Marth, Mewtwo, Ness, Peach, Pikachu, Popo, Jigglypuff, Samus, Yoshi,
	Zelda, Sheik, Falco, YoungLink, DrMario, Roy, Pichu, Ganondorf, MasterHand,
	WireframeMale, WireframeFemale, GigaBowser, CrazyHand, Sandbag, Popo,
}

// CharacterFromInternal converts a raw internal id.
func CharacterFromInternal(id uint8) (Character, error) {
	if int(id) >= len(characterNames) {
		return 0, fmt.Errorf("internal character id %d: %w", id, ErrUnknownCode)
	}
	return Character(id), nil
}

// CharacterFromExternal converts a character-select id from the game-start
// record.
func CharacterFromExternal(id uint8) (Character, error) {
	if int(id) >= len(externalToInternal) {
		return 0, fmt.Errorf("external character id %d: %w", id, ErrUnknownCode)
	}
	return externalToInternal[id], nil
}

// HasFollower reports whether the character drags a paired follower entity
// through the match.
func (c Character) HasFollower() bool {
	return c == Popo
}

func (c Character) String() string {
	if int(c) < len(characterNames) {
		return characterNames[c]
	}
	return fmt.Sprintf("Character(%d)", uint8(c))
}
