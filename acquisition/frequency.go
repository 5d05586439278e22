package acquisition

import "math"

// Gyromagnetic ratios of common nuclei relative to 1H.
// Used to get the spectrometer's 1H frequency from NUC<n> and BF<n>. Do not modify.
var GyroRatios = map[string]float64{
	"1H":  1.000000,
	"13C": 0.251504,
	"15N": 0.101360,
	"14N": 0.072259,
	"2H":  0.153501,
	"19F": 0.940714,
	"31P": 0.404793,
}

// ProtonFrequency returns the spectrometer frequency in MHz as it would be for 1H,
// or nil if no channel has both a known nucleus and a base frequency.
// Works when no 1H channel is used in the experiment.
//
// Every qualifying channel is evaluated and the last one wins.
func ProtonFrequency(channels [NumChannels]Channel, ratios map[string]float64) *int {
	var mhz *int
	for _, ch := range channels {
		if !ch.HasBF || ch.BF == 0 {
			continue
		}
		ratio, ok := ratios[ch.Nucleus]
		if !ok {
			continue
		}

		f := int(math.RoundToEven(ch.BF / ratio))
		mhz = &f
	}
	return mhz
}
