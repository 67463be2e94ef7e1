package state

import "github.com/framelog/slp/pkg/core"

const (
	peachFloat uint8 = iota
	peachFloatAttack
	peachSideSmash
	peachVegetable
	peachBomber
	peachParasol
	peachToad
)

const (
	peachActFloat uint8 = iota
	peachActFloatAerial
	peachActSideSmash
	peachActVegetable
	peachActAirVegetable
	peachActBomber
	peachActAirBomber
	peachActParasol
	peachActToad
	peachActAirToad
)

var peachTable = &table{
	character: core.Peach,
	states: []specialState{
		{"Float", peachFloat},
		{"FloatEndForward", peachFloat},
		{"FloatEndBackward", peachFloat},
		{"FloatNair", peachFloatAttack},
		{"FloatFair", peachFloatAttack},
		{"FloatBair", peachFloatAttack},
		{"FloatUair", peachFloatAttack},
		{"FloatDair", peachFloatAttack},
		{"SideSmashGolfClub", peachSideSmash},
		{"SideSmashFryingPan", peachSideSmash},
		{"SideSmashTennisRacket", peachSideSmash},
		{"VegetableGround", peachVegetable},
		{"VegetableAir", peachVegetable},
		{"BomberGroundStartup", peachBomber},
		{"BomberGroundEnd", peachBomber},
		{"BomberAirStartup", peachBomber},
		{"BomberAirEnd", peachBomber},
		{"BomberAirHit", peachBomber},
		{"BomberAir", peachBomber},
		{"ParasolGroundStart", peachParasol},
		{"ParasolAirStart", peachParasol},
		{"ToadGround", peachToad},
		{"ToadGroundAttack", peachToad},
		{"ToadAir", peachToad},
		{"ToadAirAttack", peachToad},
		{"ParasolOpening", peachParasol},
		{"ParasolOpen", peachParasol},
	},
	categories: []category{
		{"Float", Dispatch{peachActFloat, peachActFloat, Shared(peachActFloat)}},
		{"FloatAttack", Dispatch{peachActFloatAerial, peachActFloatAerial, Shared(peachActFloatAerial)}},
		{"SideSmash", Dispatch{peachActSideSmash, peachActSideSmash, JumpCancel{}}},
		{"Vegetable", Dispatch{peachActVegetable, peachActAirVegetable, JumpCancel{}}},
		{"Bomber", Dispatch{peachActBomber, peachActAirBomber, JumpCancel{}}},
		{"Parasol", Dispatch{peachActParasol, peachActParasol, JumpCancel{}}},
		{"Toad", Dispatch{peachActToad, peachActAirToad, JumpCancel{}}},
	},
	actions: []string{
		"Float", "FloatAerial", "SideSmash", "Vegetable", "AirVegetable",
		"Bomber", "AirBomber", "Parasol", "Toad", "AirToad",
	},
}
