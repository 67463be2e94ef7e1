package core

import "fmt"

// StandardState is an action state shared by every character (codes 0-340).
type StandardState uint16

// NumStandardStates is the size of the standard action state table. Codes at
// or above it are special states whose meaning depends on the character.
const NumStandardStates = 341

const (
	StateDeadDown StandardState = iota
	StateDeadLeft
	StateDeadRight
	StateDeadUp
	StateDeadUpStar
	StateDeadUpStarIce
	StateDeadUpFall
	StateDeadUpFallHitCamera
	StateDeadUpFallHitCameraFlat
	StateDeadUpFallIce
	StateDeadUpFallHitCameraIce
	StateSleep
	StateRebirth
	StateRebirthWait
	StateWait
	StateWalkSlow
	StateWalkMiddle
	StateWalkFast
	StateTurn
	StateTurnRun
	StateDash
	StateRun
	StateRunDirect
	StateRunBrake
	StateKneeBend
	StateJumpF
	StateJumpB
	StateJumpAerialF
	StateJumpAerialB
	StateFall
	StateFallF
	StateFallB
	StateFallAerial
	StateFallAerialF
	StateFallAerialB
	StateFallSpecial
	StateFallSpecialF
	StateFallSpecialB
	StateDamageFall
	StateSquat
	StateSquatWait
	StateSquatRv
	StateLanding
	StateLandingFallSpecial
	StateAttack11
	StateAttack12
	StateAttack13
	StateAttack100Start
	StateAttack100Loop
	StateAttack100End
	StateAttackDash
	StateAttackS3Hi
	StateAttackS3HiS
	StateAttackS3S
	StateAttackS3LwS
	StateAttackS3Lw
	StateAttackHi3
	StateAttackLw3
	StateAttackS4Hi
	StateAttackS4HiS
	StateAttackS4S
	StateAttackS4LwS
	StateAttackS4Lw
	StateAttackHi4
	StateAttackLw4
	StateAttackAirN
	StateAttackAirF
	StateAttackAirB
	StateAttackAirHi
	StateAttackAirLw
	StateLandingAirN
	StateLandingAirF
	StateLandingAirB
	StateLandingAirHi
	StateLandingAirLw
	StateDamageHi1
	StateDamageHi2
	StateDamageHi3
	StateDamageN1
	StateDamageN2
	StateDamageN3
	StateDamageLw1
	StateDamageLw2
	StateDamageLw3
	StateDamageAir1
	StateDamageAir2
	StateDamageAir3
	StateDamageFlyHi
	StateDamageFlyN
	StateDamageFlyLw
	StateDamageFlyTop
	StateDamageFlyRoll
	StateLightGet
	StateHeavyGet
	StateLightThrowF
	StateLightThrowB
	StateLightThrowHi
	StateLightThrowLw
	StateLightThrowDash
	StateLightThrowDrop
	StateLightThrowAirF
	StateLightThrowAirB
	StateLightThrowAirHi
	StateLightThrowAirLw
	StateHeavyThrowF
	StateHeavyThrowB
	StateHeavyThrowHi
	StateHeavyThrowLw
	StateLightThrowF4
	StateLightThrowB4
	StateLightThrowHi4
	StateLightThrowLw4
	StateLightThrowAirF4
	StateLightThrowAirB4
	StateLightThrowAirHi4
	StateLightThrowAirLw4
	StateHeavyThrowF4
	StateHeavyThrowB4
	StateHeavyThrowHi4
	StateHeavyThrowLw4
	StateSwordSwing1
	StateSwordSwing3
	StateSwordSwing4
	StateSwordSwingDash
	StateBatSwing1
	StateBatSwing3
	StateBatSwing4
	StateBatSwingDash
	StateParasolSwing1
	StateParasolSwing3
	StateParasolSwing4
	StateParasolSwingDash
	StateHarisenSwing1
	StateHarisenSwing3
	StateHarisenSwing4
	StateHarisenSwingDash
	StateStarRodSwing1
	StateStarRodSwing3
	StateStarRodSwing4
	StateStarRodSwingDash
	StateLipStickSwing1
	StateLipStickSwing3
	StateLipStickSwing4
	StateLipStickSwingDash
	StateItemParasolOpen
	StateItemParasolFall
	StateItemParasolFallSpecial
	StateItemParasolDamageFall
	StateLGunShoot
	StateLGunShootAir
	StateLGunShootEmpty
	StateLGunShootAirEmpty
	StateFireFlowerShoot
	StateFireFlowerShootAir
	StateItemScrew
	StateItemScrewAir
	StateDamageScrew
	StateDamageScrewAir
	StateItemScopeStart
	StateItemScopeRapid
	StateItemScopeFire
	StateItemScopeEnd
	StateItemScopeAirStart
	StateItemScopeAirRapid
	StateItemScopeAirFire
	StateItemScopeAirEnd
	StateItemScopeStartEmpty
	StateItemScopeRapidEmpty
	StateItemScopeFireEmpty
	StateItemScopeEndEmpty
	StateItemScopeAirStartEmpty
	StateItemScopeAirRapidEmpty
	StateItemScopeAirFireEmpty
	StateItemScopeAirEndEmpty
	StateLiftWait
	StateLiftWalk1
	StateLiftWalk2
	StateLiftTurn
	StateGuardOn
	StateGuard
	StateGuardOff
	StateGuardSetOff
	StateGuardReflect
	StateDownBoundU
	StateDownWaitU
	StateDownDamageU
	StateDownStandU
	StateDownAttackU
	StateDownFowardU
	StateDownBackU
	StateDownSpotU
	StateDownBoundD
	StateDownWaitD
	StateDownDamageD
	StateDownStandD
	StateDownAttackD
	StateDownFowardD
	StateDownBackD
	StateDownSpotD
	StatePassive
	StatePassiveStandF
	StatePassiveStandB
	StatePassiveWall
	StatePassiveWallJump
	StatePassiveCeil
	StateShieldBreakFly
	StateShieldBreakFall
	StateShieldBreakDownU
	StateShieldBreakDownD
	StateShieldBreakStandU
	StateShieldBreakStandD
	StateFuraFura
	StateCatch
	StateCatchPull
	StateCatchDash
	StateCatchDashPull
	StateCatchWait
	StateCatchAttack
	StateCatchCut
	StateThrowF
	StateThrowB
	StateThrowHi
	StateThrowLw
	StateCapturePulledHi
	StateCaptureWaitHi
	StateCaptureDamageHi
	StateCapturePulledLw
	StateCaptureWaitLw
	StateCaptureDamageLw
	StateCaptureCut
	StateCaptureJump
	StateCaptureNeck
	StateCaptureFoot
	StateEscapeF
	StateEscapeB
	StateEscape
	StateEscapeAir
	StateReboundStop
	StateRebound
	StateThrownF
	StateThrownB
	StateThrownHi
	StateThrownLw
	StateThrownLwWomen
	StatePass
	StateOttotto
	StateOttottoWait
	StateFlyReflectWall
	StateFlyReflectCeil
	StateStopWall
	StateStopCeil
	StateMissFoot
	StateCliffCatch
	StateCliffWait
	StateCliffClimbSlow
	StateCliffClimbQuick
	StateCliffAttackSlow
	StateCliffAttackQuick
	StateCliffEscapeSlow
	StateCliffEscapeQuick
	StateCliffJumpSlow1
	StateCliffJumpSlow2
	StateCliffJumpQuick1
	StateCliffJumpQuick2
	StateAppealR
	StateAppealL
	StateShoulderedWait
	StateShoulderedWalkSlow
	StateShoulderedWalkMiddle
	StateShoulderedWalkFast
	StateShoulderedTurn
	StateThrownFF
	StateThrownFB
	StateThrownFHi
	StateThrownFLw
	StateCaptureCaptain
	StateCaptureYoshi
	StateYoshiEgg
	StateCaptureKoopa
	StateCaptureDamageKoopa
	StateCaptureWaitKoopa
	StateThrownKoopaF
	StateThrownKoopaB
	StateCaptureKoopaAir
	StateCaptureDamageKoopaAir
	StateCaptureWaitKoopaAir
	StateThrownKoopaAirF
	StateThrownKoopaAirB
	StateCaptureKirby
	StateCaptureWaitKirby
	StateThrownKirbyStar
	StateThrownCopyStar
	StateThrownKirby
	StateBarrelWait
	StateBury
	StateBuryWait
	StateBuryJump
	StateDamageSong
	StateDamageSongWait
	StateDamageSongRv
	StateDamageBind
	StateCaptureMewtwo
	StateCaptureMewtwoAir
	StateThrownMewtwo
	StateThrownMewtwoAir
	StateWarpStarJump
	StateWarpStarFall
	StateHammerWait
	StateHammerWalk
	StateHammerTurn
	StateHammerKneeBend
	StateHammerFall
	StateHammerJump
	StateHammerLanding
	StateKinokoGiantStart
	StateKinokoGiantStartAir
	StateKinokoGiantEnd
	StateKinokoGiantEndAir
	StateKinokoSmallStart
	StateKinokoSmallStartAir
	StateKinokoSmallEnd
	StateKinokoSmallEndAir
	StateEntry
	StateEntryStart
	StateEntryEnd
	StateDamageIce
	StateDamageIceJump
	StateCaptureMasterHand
	StateCaptureDamageMasterHand
	StateCaptureWaitMasterHand
	StateThrownMasterHand
	StateCaptureKirbyYoshi
	StateKirbyYoshiEgg
	StateCaptureLeadead
	StateCaptureLikeLike
	StateDownReflect
	StateCaptureCrazyHand
	StateCaptureDamageCrazyHand
	StateCaptureWaitCrazyHand
	StateThrownCrazyHand
	StateBarrelCannonWait
)

var standardStateNames = [NumStandardStates]string{
	"DeadDown", "DeadLeft", "DeadRight", "DeadUp", "DeadUpStar",
	"DeadUpStarIce", "DeadUpFall", "DeadUpFallHitCamera",
	"DeadUpFallHitCameraFlat", "DeadUpFallIce", "DeadUpFallHitCameraIce",
	"Sleep", "Rebirth", "RebirthWait", "Wait", "WalkSlow", "WalkMiddle",
	"WalkFast", "Turn", "TurnRun", "Dash", "Run", "RunDirect", "RunBrake",
	"KneeBend", "JumpF", "JumpB", "JumpAerialF", "JumpAerialB", "Fall", "FallF",
	"FallB", "FallAerial", "FallAerialF", "FallAerialB", "FallSpecial",
	"FallSpecialF", "FallSpecialB", "DamageFall", "Squat", "SquatWait",
	"SquatRv", "Landing", "LandingFallSpecial", "Attack11", "Attack12",
	"Attack13", "Attack100Start", "Attack100Loop", "Attack100End", "AttackDash",
	"AttackS3Hi", "AttackS3HiS", "AttackS3S", "AttackS3LwS", "AttackS3Lw",
	"AttackHi3", "AttackLw3", "AttackS4Hi", "AttackS4HiS", "AttackS4S",
	"AttackS4LwS", "AttackS4Lw", "AttackHi4", "AttackLw4", "AttackAirN",
	"AttackAirF", "AttackAirB", "AttackAirHi", "AttackAirLw", "LandingAirN",
	"LandingAirF", "LandingAirB", "LandingAirHi", "LandingAirLw", "DamageHi1",
	"DamageHi2", "DamageHi3", "DamageN1", "DamageN2", "DamageN3", "DamageLw1",
	"DamageLw2", "DamageLw3", "DamageAir1", "DamageAir2", "DamageAir3",
	"DamageFlyHi", "DamageFlyN", "DamageFlyLw", "DamageFlyTop", "DamageFlyRoll",
	"LightGet", "HeavyGet", "LightThrowF", "LightThrowB", "LightThrowHi",
	"LightThrowLw", "LightThrowDash", "LightThrowDrop", "LightThrowAirF",
	"LightThrowAirB", "LightThrowAirHi", "LightThrowAirLw", "HeavyThrowF",
	"HeavyThrowB", "HeavyThrowHi", "HeavyThrowLw", "LightThrowF4",
	"LightThrowB4", "LightThrowHi4", "LightThrowLw4", "LightThrowAirF4",
	"LightThrowAirB4", "LightThrowAirHi4", "LightThrowAirLw4", "HeavyThrowF4",
	"HeavyThrowB4", "HeavyThrowHi4", "HeavyThrowLw4", "SwordSwing1",
	"SwordSwing3", "SwordSwing4", "SwordSwingDash", "BatSwing1", "BatSwing3",
	"BatSwing4", "BatSwingDash", "ParasolSwing1", "ParasolSwing3",
	"ParasolSwing4", "ParasolSwingDash", "HarisenSwing1", "HarisenSwing3",
	"HarisenSwing4", "HarisenSwingDash", "StarRodSwing1", "StarRodSwing3",
	"StarRodSwing4", "StarRodSwingDash", "LipStickSwing1", "LipStickSwing3",
	"LipStickSwing4", "LipStickSwingDash", "ItemParasolOpen", "ItemParasolFall",
	"ItemParasolFallSpecial", "ItemParasolDamageFall", "LGunShoot",
	"LGunShootAir", "LGunShootEmpty", "LGunShootAirEmpty", "FireFlowerShoot",
	"FireFlowerShootAir", "ItemScrew", "ItemScrewAir", "DamageScrew",
	"DamageScrewAir", "ItemScopeStart", "ItemScopeRapid", "ItemScopeFire",
	"ItemScopeEnd", "ItemScopeAirStart", "ItemScopeAirRapid",
	"ItemScopeAirFire", "ItemScopeAirEnd", "ItemScopeStartEmpty",
	"ItemScopeRapidEmpty", "ItemScopeFireEmpty", "ItemScopeEndEmpty",
	"ItemScopeAirStartEmpty", "ItemScopeAirRapidEmpty", "ItemScopeAirFireEmpty",
	"ItemScopeAirEndEmpty", "LiftWait", "LiftWalk1", "LiftWalk2", "LiftTurn",
	"GuardOn", "Guard", "GuardOff", "GuardSetOff", "GuardReflect", "DownBoundU",
	"DownWaitU", "DownDamageU", "DownStandU", "DownAttackU", "DownFowardU",
	"DownBackU", "DownSpotU", "DownBoundD", "DownWaitD", "DownDamageD",
	"DownStandD", "DownAttackD", "DownFowardD", "DownBackD", "DownSpotD",
	"Passive", "PassiveStandF", "PassiveStandB", "PassiveWall",
	"PassiveWallJump", "PassiveCeil", "ShieldBreakFly", "ShieldBreakFall",
	"ShieldBreakDownU", "ShieldBreakDownD", "ShieldBreakStandU",
	"ShieldBreakStandD", "FuraFura", "Catch", "CatchPull", "CatchDash",
	"CatchDashPull", "CatchWait", "CatchAttack", "CatchCut", "ThrowF", "ThrowB",
	"ThrowHi", "ThrowLw", "CapturePulledHi", "CaptureWaitHi", "CaptureDamageHi",
	"CapturePulledLw", "CaptureWaitLw", "CaptureDamageLw", "CaptureCut",
	"CaptureJump", "CaptureNeck", "CaptureFoot", "EscapeF", "EscapeB", "Escape",
	"EscapeAir", "ReboundStop", "Rebound", "ThrownF", "ThrownB", "ThrownHi",
	"ThrownLw", "ThrownLwWomen", "Pass", "Ottotto", "OttottoWait",
	"FlyReflectWall", "FlyReflectCeil", "StopWall", "StopCeil", "MissFoot",
	"CliffCatch", "CliffWait", "CliffClimbSlow", "CliffClimbQuick",
	"CliffAttackSlow", "CliffAttackQuick", "CliffEscapeSlow",
	"CliffEscapeQuick", "CliffJumpSlow1", "CliffJumpSlow2", "CliffJumpQuick1",
	"CliffJumpQuick2", "AppealR", "AppealL", "ShoulderedWait",
	"ShoulderedWalkSlow", "ShoulderedWalkMiddle", "ShoulderedWalkFast",
	"ShoulderedTurn", "ThrownFF", "ThrownFB", "ThrownFHi", "ThrownFLw",
	"CaptureCaptain", "CaptureYoshi", "YoshiEgg", "CaptureKoopa",
	"CaptureDamageKoopa", "CaptureWaitKoopa", "ThrownKoopaF", "ThrownKoopaB",
	"CaptureKoopaAir", "CaptureDamageKoopaAir", "CaptureWaitKoopaAir",
	"ThrownKoopaAirF", "ThrownKoopaAirB", "CaptureKirby", "CaptureWaitKirby",
	"ThrownKirbyStar", "ThrownCopyStar", "ThrownKirby", "BarrelWait", "Bury",
	"BuryWait", "BuryJump", "DamageSong", "DamageSongWait", "DamageSongRv",
	"DamageBind", "CaptureMewtwo", "CaptureMewtwoAir", "ThrownMewtwo",
	"ThrownMewtwoAir", "WarpStarJump", "WarpStarFall", "HammerWait",
	"HammerWalk", "HammerTurn", "HammerKneeBend", "HammerFall", "HammerJump",
	"HammerLanding", "KinokoGiantStart", "KinokoGiantStartAir",
	"KinokoGiantEnd", "KinokoGiantEndAir", "KinokoSmallStart",
	"KinokoSmallStartAir", "KinokoSmallEnd", "KinokoSmallEndAir", "Entry",
	"EntryStart", "EntryEnd", "DamageIce", "DamageIceJump", "CaptureMasterHand",
	"CaptureDamageMasterHand", "CaptureWaitMasterHand", "ThrownMasterHand",
	"CaptureKirbyYoshi", "KirbyYoshiEgg", "CaptureLeadead", "CaptureLikeLike",
	"DownReflect", "CaptureCrazyHand", "CaptureDamageCrazyHand",
	"CaptureWaitCrazyHand", "ThrownCrazyHand", "BarrelCannonWait",
}

// StandardStateFromCode converts a raw code into a standard state.
func StandardStateFromCode(code uint16) (StandardState, error) {
	if code >= NumStandardStates {
		return 0, fmt.Errorf("standard action state %d: %w", code, ErrUnknownCode)
	}
	return StandardState(code), nil
}

func (s StandardState) String() string {
	if s < NumStandardStates {
		return standardStateNames[s]
	}
	return fmt.Sprintf("StandardState(%d)", uint16(s))
}
