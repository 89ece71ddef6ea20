package dctcodec

import "fmt"

// Preset is the {quality, band_lo, band_hi, rate_cap} tuple defined
// per transport channel.
type Preset struct {
	Quality int
	BandLo  int
	BandHi  int
	RateCap float64
}

// selectionBand is the zig-zag index range actually used to build the
// coefficient ordering, fixed across every preset. Per-preset BandLo
// and BandHi are retained in Presets but nothing in the module reads
// them; the codec does not vary the candidate band by preset:
// extract has no --channel flag, and the preset used at embed time is
// only recovered from the metadata carried *inside* the embedded
// bitstream itself. Varying the eligibility band per preset would make
// that bitstream unreadable until after it has already been read.
// Fixing the band to the widest preset's range (none's [6,28]) keeps
// the candidate order identical on both sides of the round trip;
// presets instead differentiate on JPEG quality and on the rate_cap
// ceiling applied to how many of those fixed-band coefficients get
// used.
var selectionBand = [2]int{6, 28}

// Presets is the closed mapping of named channel presets.
var Presets = map[string]Preset{
	"none":     {Quality: 95, BandLo: 6, BandHi: 28, RateCap: 1.0},
	"whatsapp": {Quality: 85, BandLo: 10, BandHi: 24, RateCap: 0.05},
	"telegram": {Quality: 87, BandLo: 10, BandHi: 26, RateCap: 0.08},
}

// LookupPreset resolves a preset by name, defaulting to "none" when
// name is empty.
func LookupPreset(name string) (Preset, error) {
	if name == "" {
		name = "none"
	}
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("dctcodec: unknown channel preset %q", name)
	}
	return p, nil
}

// ClampRate clamps a user-requested rate into (0, 1] and then into the
// preset's rate_cap ceiling.
func ClampRate(rate float64, p Preset) float64 {
	if rate <= 0 {
		rate = 0.01
	}
	if rate > 1 {
		rate = 1
	}
	if rate > p.RateCap {
		rate = p.RateCap
	}
	return rate
}
