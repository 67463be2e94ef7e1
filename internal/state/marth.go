package state

import "github.com/framelog/slp/pkg/core"

const (
	marthShieldBreaker uint8 = iota
	marthDancingBlade
	marthDolphinSlash
	marthCounter
)

const (
	marthActShieldBreaker uint8 = iota
	marthActAirShieldBreaker
	marthActDancingBlade
	marthActAirDancingBlade
	marthActDolphinSlash
	marthActCounter
	marthActAirCounter
)

var marthTable = &table{
	character: core.Marth,
	states: []specialState{
		{"ShieldBreakerGroundStartCharge", marthShieldBreaker},
		{"ShieldBreakerGroundChargeLoop", marthShieldBreaker},
		{"ShieldBreakerGroundEarlyRelease", marthShieldBreaker},
		{"ShieldBreakerGroundFullyCharged", marthShieldBreaker},
		{"ShieldBreakerAirStartCharge", marthShieldBreaker},
		{"ShieldBreakerAirChargeLoop", marthShieldBreaker},
		{"ShieldBreakerAirEarlyRelease", marthShieldBreaker},
		{"ShieldBreakerAirFullyCharged", marthShieldBreaker},
		{"DancingBlade1Ground", marthDancingBlade},
		{"DancingBlade2UpGround", marthDancingBlade},
		{"DancingBlade2SideGround", marthDancingBlade},
		{"DancingBlade3UpGround", marthDancingBlade},
		{"DancingBlade3SideGround", marthDancingBlade},
		{"DancingBlade3DownGround", marthDancingBlade},
		{"DancingBlade4UpGround", marthDancingBlade},
		{"DancingBlade4SideGround", marthDancingBlade},
		{"DancingBlade4DownGround", marthDancingBlade},
		{"DancingBlade1Air", marthDancingBlade},
		{"DancingBlade2UpAir", marthDancingBlade},
		{"DancingBlade2SideAir", marthDancingBlade},
		{"DancingBlade3UpAir", marthDancingBlade},
		{"DancingBlade3SideAir", marthDancingBlade},
		{"DancingBlade3DownAir", marthDancingBlade},
		{"DancingBlade4UpAir", marthDancingBlade},
		{"DancingBlade4SideAir", marthDancingBlade},
		{"DancingBlade4DownAir", marthDancingBlade},
		{"DolphinSlashGround", marthDolphinSlash},
		{"DolphinSlashAir", marthDolphinSlash},
		{"CounterGround", marthCounter},
		{"CounterGroundHit", marthCounter},
		{"CounterAir", marthCounter},
		{"CounterAirHit", marthCounter},
	},
	categories: []category{
		{"ShieldBreaker", Dispatch{marthActShieldBreaker, marthActAirShieldBreaker, JumpCancel{}}},
		{"DancingBlade", Dispatch{marthActDancingBlade, marthActAirDancingBlade, JumpCancel{}}},
		{"DolphinSlash", Dispatch{marthActDolphinSlash, marthActDolphinSlash, JumpCancel{}}},
		{"Counter", Dispatch{marthActCounter, marthActAirCounter, JumpCancel{}}},
	},
	actions: []string{
		"ShieldBreaker", "AirShieldBreaker", "DancingBlade", "AirDancingBlade",
		"DolphinSlash", "Counter", "AirCounter",
	},
}
