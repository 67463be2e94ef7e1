package state

import "github.com/framelog/slp/pkg/core"

// Fox and Falco share one special state layout.
const (
	foxBlaster uint8 = iota
	foxIllusion
	foxFireFox
	foxReflector
	foxTaunt
)

const (
	foxActBlaster uint8 = iota
	foxActAirBlaster
	foxActShortHopLaser
	foxActFullHopLaser
	foxActIllusion
	foxActAirIllusion
	foxActFireFox
	foxActShine
	foxActAirShine
	foxActShortHopShine
	foxActFullHopShine
	foxActTaunt
)

var foxTable = &table{
	character: core.Fox,
	states: []specialState{
		{"BlasterGroundStartup", foxBlaster},
		{"BlasterGroundLoop", foxBlaster},
		{"BlasterGroundEnd", foxBlaster},
		{"BlasterAirStartup", foxBlaster},
		{"BlasterAirLoop", foxBlaster},
		{"BlasterAirEnd", foxBlaster},
		{"IllusionGroundStartup", foxIllusion},
		{"IllusionGround", foxIllusion},
		{"IllusionGroundEnd", foxIllusion},
		{"IllusionAirStartup", foxIllusion},
		{"IllusionAir", foxIllusion},
		{"IllusionAirEnd", foxIllusion},
		{"FireFoxGroundStartup", foxFireFox},
		{"FireFoxAirStartup", foxFireFox},
		{"FireFoxGround", foxFireFox},
		{"FireFoxAir", foxFireFox},
		{"FireFoxGroundEnd", foxFireFox},
		{"FireFoxAirEnd", foxFireFox},
		{"FireFoxBounceEnd", foxFireFox},
		{"ReflectorGroundStartup", foxReflector},
		{"ReflectorGroundLoop", foxReflector},
		{"ReflectorGroundReflect", foxReflector},
		{"ReflectorGroundEnd", foxReflector},
		{"ReflectorGroundChangeDirection", foxReflector},
		{"ReflectorAirStartup", foxReflector},
		{"ReflectorAirLoop", foxReflector},
		{"ReflectorAirReflect", foxReflector},
		{"ReflectorAirEnd", foxReflector},
		{"ReflectorAirChangeDirection", foxReflector},
		{"SmashTauntRightStartup", foxTaunt},
		{"SmashTauntLeftStartup", foxTaunt},
		{"SmashTauntRightRise", foxTaunt},
		{"SmashTauntLeftRise", foxTaunt},
		{"SmashTauntRightFinish", foxTaunt},
		{"SmashTauntLeftFinish", foxTaunt},
	},
	categories: []category{
		{"Blaster", Dispatch{foxActBlaster, foxActAirBlaster, ByHop(foxActShortHopLaser, foxActFullHopLaser)}},
		{"Illusion", Dispatch{foxActIllusion, foxActAirIllusion, JumpCancel{}}},
		{"FireFox", Dispatch{foxActFireFox, foxActFireFox, JumpCancel{}}},
		{"Reflector", Dispatch{foxActShine, foxActAirShine, ByHop(foxActShortHopShine, foxActFullHopShine)}},
		{"Taunt", Dispatch{foxActTaunt, foxActTaunt, JumpCancel{}}},
	},
	actions: []string{
		"Blaster", "AirBlaster", "ShortHopLaser", "FullHopLaser",
		"Illusion", "AirIllusion", "FireFox",
		"Shine", "AirShine", "ShortHopShine", "FullHopShine",
		"SmashTaunt",
	},
}
