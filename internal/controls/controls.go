// Package controls implements the typed radar settings registry: each
// control's value/min/max/active state, clamped change/toggle operations,
// and the read-only misc-telemetry surface.
package controls

import (
	"errors"

	"github.com/banshee-data/radardrv/internal/wire"
)

// ControlType enumerates every radar setting the registry tracks. Keys are
// fixed at construction; membership is compile-time-closed.
type ControlType int

const (
	GAIN ControlType = iota
	SEA
	SEA_AUTO
	RAIN
	FTC
	INTERFERENCE_REJECTION
	TARGET_BOOST
	BEARING_ALIGNMENT
	STC
	STC_CURVE
	TUNE_FINE
	TUNE_COARSE
	MBS_ENABLED
	DISPLAY_TIMING
	controlTypeCount
)

// ErrNotSet is returned by Get when the control's value has never been
// populated from a feedback packet.
var ErrNotSet = errors.New("controls: value not set")

// ErrInvalidControl is returned when a ControlType outside the closed enum
// is requested.
var ErrInvalidControl = errors.New("controls: invalid control")

// ErrOutOfRange names a caller-supplied value that fails the control's
// min/max check. No function in this package returns it: SetValue does not
// check bounds, and ChangeValue clamps instead.
var ErrOutOfRange = errors.New("controls: value out of range")

// ErrToggleNotPermitted names a toggle request for a control that has no
// auto/manual distinction. ToggleAuto does not return it; it reports that
// case as false.
var ErrToggleNotPermitted = errors.New("controls: toggle not permitted for this control")

// ControlItem is a single radar setting: a value, optional min/max bounds,
// and an active flag whose meaning depends on the control (see
// ControlRegistry.ApplyFeedback and ControlRegistry.ToggleAuto).
type ControlItem struct {
	value    int
	set      bool
	min, max int
	boundsSet bool
	active   bool
}

// Get returns the current value, or ErrNotSet if it has never been set.
func (c *ControlItem) Get() (int, error) {
	if !c.set {
		return 0, ErrNotSet
	}
	return c.value, nil
}

// IsSet reports whether Get would succeed.
func (c *ControlItem) IsSet() bool { return c.set }

// Active reports the control's active flag. See ControlRegistry.ApplyFeedback
// for the per-control meaning of true/false.
func (c *ControlItem) Active() bool { return c.active }

// Bounds returns the control's min/max, and whether both are set.
func (c *ControlItem) Bounds() (min, max int, ok bool) {
	return c.min, c.max, c.boundsSet
}

func (c *ControlItem) setValue(v int) {
	c.value = v
	c.set = true
}

func (c *ControlItem) setBounds(min, max int) {
	c.min, c.max = min, max
	c.boundsSet = true
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// rangeTableSize is the number of range presets the wire protocol indexes
// (0..10), per §3's "range table" type.
const rangeTableSize = 11

// defaultRangeTable seeds the 11-entry ascending range-in-meters table
// before any feedback has arrived, grounded on RMControl.cpp's commented
// predecessor of the deployed `radar_ranges[]` (1852/8 nautical-mile-derived
// steps, doubling from there) rather than the deployed 11-entry array one
// index over — the commented table is the one whose values line up with
// §8 Scenario S3's stated `radar_ranges[4]=2778, radar_ranges[5]=5556`.
var defaultRangeTable = [rangeTableSize]int{231, 463, 926, 1389, 2778, 5556, 11112, 22224, 44448, 88896, 177792}

// defaultCurrentRanges mirrors RMControl.cpp's `current_ranges[11]` seed:
// the last-seen raw Feedback.RangeValues, used only to detect a units
// change (the radar switching between metric/imperial display scales).
var defaultCurrentRanges = [rangeTableSize]uint32{125, 250, 500, 750, 1500, 3000, 6000, 12000, 24000, 48000, 72000}

// MiscInfo is read-only radar telemetry populated from PresetFeedback.
type MiscInfo struct {
	WarmupTime       int
	SignalStrength   int
	MagnetronCurrent int
	MagnetronHours   int
	RotationPeriodMS int
}

// Sender abstracts the outbound datagram transport so the registry can be
// tested without a live socket; in production it is the session's command
// socket.
type Sender interface {
	Send(datagram []byte) error
}

// ControlRegistry is the typed mapping from ControlType to ControlItem,
// plus the read-only misc-telemetry surface. The zero value is not usable;
// construct with NewControlRegistry.
type ControlRegistry struct {
	items [controlTypeCount]ControlItem
	misc  MiscInfo

	rangeTable    [rangeTableSize]int
	currentRanges [rangeTableSize]uint32
	rangeMeters   int
	rangeID       byte

	sender     Sender
	haveRadar  func() bool
	transmitOn func() bool
}

// NewControlRegistry builds a registry with the fixed initial min/max
// values the reference firmware uses for controls whose bounds are not
// reported dynamically by PresetFeedback (gain/sea/rain/ftc bounds arrive
// later from PresetFeedback and are applied via ApplyPresetFeedback).
//
// haveRadar and transmitOn are polled on every write attempt; when either
// returns false, all set/change/toggle operations are rejected, matching
// §4.B's "all set attempts are rejected when haveRadar==false or transmit
// is disabled" invariant.
func NewControlRegistry(sender Sender, haveRadar, transmitOn func() bool) *ControlRegistry {
	r := &ControlRegistry{
		sender:        sender,
		haveRadar:     haveRadar,
		transmitOn:    transmitOn,
		rangeTable:    defaultRangeTable,
		currentRanges: defaultCurrentRanges,
	}
	r.items[TUNE_FINE].setBounds(0, 255)
	r.items[TUNE_COARSE].setBounds(0, 255)
	r.items[BEARING_ALIGNMENT].setBounds(-1800, 1795)
	r.items[SEA_AUTO].setBounds(0, 3)
	r.items[INTERFERENCE_REJECTION].setBounds(0, 2)
	r.items[TARGET_BOOST].setBounds(0, 2)
	r.items[DISPLAY_TIMING].setBounds(0, 255)
	r.items[MBS_ENABLED].setBounds(0, 1)
	r.items[STC_CURVE].setBounds(1, 8)
	return r
}

func (r *ControlRegistry) canWrite() bool {
	return r.haveRadar() && r.transmitOn()
}

// Get returns the item for a control type, or ErrInvalidControl if ct is
// out of the closed enum.
func (r *ControlRegistry) Get(ct ControlType) (*ControlItem, error) {
	if ct < 0 || ct >= controlTypeCount {
		return nil, ErrInvalidControl
	}
	return &r.items[ct], nil
}

// GetMisc returns a copy of the current misc telemetry.
func (r *ControlRegistry) GetMisc() MiscInfo { return r.misc }

// RangeMeters returns the range last reported by the radar, in meters, for
// feeding the live spoke pipeline. Zero until the first Feedback arrives.
func (r *ControlRegistry) RangeMeters() int { return r.rangeMeters }

// SetRangeMeters selects the first range-table entry at or above meters and
// sends the corresponding "set range" command, matching
// CRMControl::SetRangeMeters. If meters exceeds every table entry, the
// longest range is selected and false is returned (the radar still gets a
// command, just not the range asked for).
func (r *ControlRegistry) SetRangeMeters(meters int) bool {
	if !r.canWrite() {
		return false
	}
	for i, v := range r.rangeTable {
		if meters <= v {
			return r.sendRangeIndex(byte(i))
		}
	}
	r.sendRangeIndex(byte(rangeTableSize - 1))
	return false
}

func (r *ControlRegistry) sendRangeIndex(idx byte) bool {
	return r.sender.Send(wire.EncodeSetRange(idx)) == nil
}

// SetValue sends the wire command to set ct to value, caller-facing.
// Returns false if the radar/transmit preconditions aren't met, if ct is
// invalid, or if the underlying encoder rejects value (e.g. interference
// rejection/target boost out of their 0..2 range).
func (r *ControlRegistry) SetValue(ct ControlType, value int) bool {
	if !r.canWrite() {
		return false
	}
	datagram := r.encode(ct, value)
	if datagram == nil {
		return false
	}
	if err := r.sender.Send(datagram); err != nil {
		return false
	}
	item, err := r.Get(ct)
	if err != nil {
		return false
	}
	item.setValue(value)
	return true
}

// ChangeValue reads the current value (must be set), clamps value+delta to
// [min,max], enables manual mode first if the item is currently auto, and
// emits the set command. Fails silently (returns false) if the value or
// bounds are unset, matching §4.B.
func (r *ControlRegistry) ChangeValue(ct ControlType, delta int) bool {
	item, err := r.Get(ct)
	if err != nil {
		return false
	}
	current, err := item.Get()
	if err != nil {
		return false
	}
	min, max, ok := item.Bounds()
	if !ok {
		return false
	}
	newValue := clamp(current+delta, min, max)
	if !item.Active() {
		r.ToggleAuto(ct)
	}
	return r.SetValue(ct, newValue)
}

// autoCapable controls are the only ones ToggleAuto accepts, matching
// CRMControl::ToggleAuto's switch statement.
func autoCapable(ct ControlType) bool {
	switch ct {
	case GAIN, RAIN, SEA, SEA_AUTO, FTC, TUNE_FINE, TUNE_COARSE:
		return true
	default:
		return false
	}
}

// ToggleAuto flips the auto/manual (or enabled) state for the auto-capable
// controls listed in §4.B, sends the corresponding wire command, and
// updates the registry's active flag to match. Permitted only for {GAIN,
// RAIN, SEA, SEA_AUTO, FTC, TUNE_FINE, TUNE_COARSE}; returns false
// otherwise, or if the item's value has never been set.
func (r *ControlRegistry) ToggleAuto(ct ControlType) bool {
	if !autoCapable(ct) {
		return false
	}
	item, err := r.Get(ct)
	if err != nil || !item.IsSet() {
		return false
	}
	if !r.canWrite() {
		return false
	}

	// oldActive drives which command is sent — CRMControl::ToggleAuto reads
	// the item's current (pre-toggle) active flag to decide the argument,
	// not the flipped value.
	oldActive := item.active
	var datagram []byte
	switch ct {
	case GAIN:
		datagram = wire.EncodeGainAuto(oldActive) // active means manual
	case RAIN:
		datagram = wire.EncodeRainEnable(!oldActive) // active means enabled
	case SEA:
		if oldActive {
			datagram = wire.EncodeSeaAuto(1)
		} else {
			datagram = wire.EncodeSeaAuto(0)
		}
	case SEA_AUTO:
		if oldActive {
			datagram = wire.EncodeSeaAuto(0)
		} else {
			datagram = wire.EncodeSeaAuto(1)
		}
	case FTC:
		datagram = wire.EncodeFTCEnable(!oldActive) // active means enabled
	case TUNE_FINE, TUNE_COARSE:
		datagram = wire.EncodeTuneAuto(oldActive) // active means manual
	}
	if datagram == nil {
		return false
	}
	if err := r.sender.Send(datagram); err != nil {
		return false
	}
	item.active = !oldActive
	return true
}

// encode dispatches to the matching internal/wire encoder for ct, or
// returns nil if the encoder rejects value or ct is not a settable
// control.
func (r *ControlRegistry) encode(ct ControlType, value int) []byte {
	switch ct {
	case GAIN:
		return wire.EncodeSetGain(byte(value))
	case SEA:
		return wire.EncodeSetSea(byte(value))
	case SEA_AUTO:
		return wire.EncodeSeaAuto(byte(value))
	case RAIN:
		return wire.EncodeRainSet(byte(value))
	case FTC:
		return wire.EncodeFTCSet(byte(value))
	case INTERFERENCE_REJECTION:
		return wire.EncodeInterferenceRejection(byte(value))
	case TARGET_BOOST:
		return wire.EncodeTargetExpansion(byte(value))
	case BEARING_ALIGNMENT:
		return wire.EncodeBearingOffset(int32(value))
	case STC:
		return wire.EncodeSTCPreset(byte(value))
	case TUNE_FINE:
		return wire.EncodeTuneFine(byte(value))
	case TUNE_COARSE:
		return wire.EncodeCoarseTune(byte(value))
	case MBS_ENABLED:
		return wire.EncodeMBSEnable(value == 1)
	case DISPLAY_TIMING:
		return wire.EncodeDisplayTiming(byte(value))
	case STC_CURVE:
		return wire.EncodeCurveSelect(byte(value))
	default:
		return nil
	}
}

// ApplyFeedback updates every control's value/active state from a decoded
// Feedback record (§4.A). Besides ToggleAuto and ApplyCurveFeedback, this is
// the only writer of item.active; it runs on the worker goroutine that owns the
// registry, per §5's single-writer contract.
func (r *ControlRegistry) ApplyFeedback(f wire.Feedback) {
	// Units changed (radar switched its reported display scale) when the
	// first raw range value no longer matches what was last observed;
	// rebuild every table entry from the new raw values, matching
	// ProcessFeedback's "Units must have changed" branch.
	if f.RangeValues[0] != r.currentRanges[0] {
		for i := range r.rangeTable {
			r.currentRanges[i] = f.RangeValues[i]
			r.rangeTable[i] = int(1852 * uint64(f.RangeValues[i]) / 500)
		}
	}
	if int(f.RangeID) < len(r.rangeTable) {
		r.rangeMeters = r.rangeTable[f.RangeID]
		r.rangeID = f.RangeID
	}

	r.items[GAIN].setValue(int(f.Gain))
	r.items[GAIN].active = f.AutoGain == 0 // active means manual
	r.items[SEA].setValue(int(f.SeaValue))
	r.items[SEA].active = f.AutoSea == 0
	r.items[SEA_AUTO].setValue(int(f.AutoSea))
	r.items[SEA_AUTO].active = f.AutoSea != 0
	r.items[RAIN].setValue(int(f.RainValue))
	r.items[RAIN].active = f.RainEnabled != 0
	r.items[FTC].setValue(int(f.FTCValue))
	r.items[FTC].active = f.FTCEnabled != 0
	r.items[INTERFERENCE_REJECTION].setValue(int(f.InterfRej))
	r.items[INTERFERENCE_REJECTION].active = true
	r.items[TARGET_BOOST].setValue(int(f.TargetExp))
	r.items[TARGET_BOOST].active = true
	r.items[BEARING_ALIGNMENT].setValue(int(f.BearingOff))
	r.items[BEARING_ALIGNMENT].active = true
	r.items[TUNE_FINE].setValue(int(f.Tune))
	r.items[TUNE_FINE].active = f.AutoTune == 0
	r.items[TUNE_COARSE].active = f.AutoTune == 0
	r.items[MBS_ENABLED].setValue(int(f.MBSEnabled))
	r.items[MBS_ENABLED].active = true

	r.misc.WarmupTime = int(f.WarmupTime)
	r.misc.SignalStrength = int(f.SignalBars)
}

// ApplyPresetFeedback updates the dynamically-reported bounds and the
// remaining misc telemetry from a decoded PresetFeedback record.
func (r *ControlRegistry) ApplyPresetFeedback(p wire.PresetFeedback) {
	r.items[GAIN].setBounds(int(p.MinGain), int(p.MaxGain))
	r.items[SEA].setBounds(int(p.MinSea), int(p.MaxSea))
	r.items[RAIN].setBounds(int(p.MinRain), int(p.MaxRain))
	r.items[FTC].setBounds(int(p.MinFTC), int(p.MaxFTC))
	r.items[STC].setValue(int(p.STCPresetValue))
	r.items[STC].setBounds(0, int(p.STCPresetMax))
	r.items[DISPLAY_TIMING].setValue(int(p.DisplayTimingValue))
	r.items[TUNE_COARSE].setValue(int(p.CoarseTuneValue))

	r.misc.MagnetronCurrent = int(p.MagnetronCurrent)
	r.misc.MagnetronHours = int(p.MagnetronHours)
	r.misc.RotationPeriodMS = int(p.RotationTimeMillis)
}

// ApplyCurveFeedback updates STC_CURVE from a decoded curve-feedback byte.
func (r *ControlRegistry) ApplyCurveFeedback(raw byte) {
	idx, ok := wire.CurveIndex(raw)
	if !ok {
		return
	}
	r.items[STC_CURVE].setValue(int(idx))
	r.items[STC_CURVE].active = true
}
