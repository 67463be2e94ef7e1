package state

import "github.com/framelog/slp/pkg/core"

const (
	sheikNeedle uint8 = iota
	sheikChain
	sheikVanish
	sheikTransform
)

const (
	sheikActNeedle uint8 = iota
	sheikActAirNeedle
	sheikActHopNeedle
	sheikActChain
	sheikActAirChain
	sheikActVanish
	sheikActAirVanish
	sheikActTransform
	sheikActAirTransform
)

var sheikTable = &table{
	character: core.Sheik,
	states: []specialState{
		{"NeedleGroundStartCharge", sheikNeedle},
		{"NeedleGroundChargeLoop", sheikNeedle},
		{"NeedleGroundEndCharge", sheikNeedle},
		{"NeedleGroundFire", sheikNeedle},
		{"NeedleAirStartCharge", sheikNeedle},
		{"NeedleAirChargeLoop", sheikNeedle},
		{"NeedleAirEndCharge", sheikNeedle},
		{"NeedleAirFire", sheikNeedle},
		{"ChainGroundStartup", sheikChain},
		{"ChainGroundLoop", sheikChain},
		{"ChainGroundEnd", sheikChain},
		{"ChainAirStartup", sheikChain},
		{"ChainAirLoop", sheikChain},
		{"ChainAirEnd", sheikChain},
		{"VanishGroundStartup", sheikVanish},
		{"VanishGroundDisappear", sheikVanish},
		{"VanishGroundReappear", sheikVanish},
		{"VanishAirStartup", sheikVanish},
		{"VanishAirDisappear", sheikVanish},
		{"VanishAirReappear", sheikVanish},
		{"TransformGround", sheikTransform},
		{"TransformGroundEnding", sheikTransform},
		{"TransformAir", sheikTransform},
		{"TransformAirEnding", sheikTransform},
	},
	categories: []category{
		{"Needle", Dispatch{sheikActNeedle, sheikActAirNeedle, Shared(sheikActHopNeedle)}},
		{"Chain", Dispatch{sheikActChain, sheikActAirChain, JumpCancel{}}},
		{"Vanish", Dispatch{sheikActVanish, sheikActAirVanish, JumpCancel{}}},
		{"Transform", Dispatch{sheikActTransform, sheikActAirTransform, JumpCancel{}}},
	},
	actions: []string{
		"Needle", "AirNeedle", "HopNeedle", "Chain", "AirChain",
		"Vanish", "AirVanish", "Transform", "AirTransform",
	},
}
