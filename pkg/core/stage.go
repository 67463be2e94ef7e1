package core

import "fmt"

// Stage is an opaque stage identifier from the game-start record.
type Stage uint16

// Only the stages that matter to decoding (auxiliary side channels) and the
// common legal set are named.
const (
	FountainOfDreams Stage = 2
	PokemonStadium   Stage = 3
	YoshisStory      Stage = 8
	DreamLand        Stage = 28
	Battlefield      Stage = 31
	FinalDestination Stage = 32
)

var stageNames = map[Stage]string{
	FountainOfDreams: "Fountain of Dreams",
	PokemonStadium:   "Pokémon Stadium",
	YoshisStory:      "Yoshi's Story",
	DreamLand:        "Dream Land N64",
	Battlefield:      "Battlefield",
	FinalDestination: "Final Destination",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", uint16(s))
}
