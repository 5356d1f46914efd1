package analysis

import (
	"fmt"

	"github.com/RyanBlaney/voicematch/analysis/config"
	"github.com/RyanBlaney/voicematch/dsp/spectral"
	"github.com/RyanBlaney/voicematch/dsp/stats"
	"github.com/RyanBlaney/voicematch/dsp/temporal"
	"github.com/RyanBlaney/voicematch/dsp/tonal"
	"github.com/RyanBlaney/voicematch/dsp/windowing"
	"github.com/RyanBlaney/voicematch/logging"
)

// FeatureExtractor turns a decoded mono waveform into the raw acoustic
// measurements and the fixed-length timbre vector used by the matchers.
// It analyzes at most the first MaxSeconds of the clip.
type FeatureExtractor struct {
	cfg    *config.ExtractionConfig
	stft   *spectral.STFT
	mfcc   *spectral.MFCC
	delta  *spectral.Delta
	logger logging.Logger
}

// NewFeatureExtractor creates an extractor. A nil config uses the defaults.
func NewFeatureExtractor(cfg *config.ExtractionConfig) (*FeatureExtractor, error) {
	if cfg == nil {
		cfg = config.DefaultExtractionConfig()
	}
	delta, err := spectral.NewDeltaWithWidth(cfg.DeltaWidth)
	if err != nil {
		return nil, err
	}
	return &FeatureExtractor{
		cfg:   cfg,
		stft:  spectral.NewSTFT(),
		mfcc: spectral.NewMFCCWithParams(cfg.SampleRate, spectral.MFCCParams{
			NumCoefficients: cfg.MFCCCoefficients,
			NumMelFilters:   cfg.MelFilters,
		}),
		delta:  delta,
		logger: logging.WithFields(logging.Fields{"component": "analysis"}),
	}, nil
}

// ExtractRawFeatures computes the scalar acoustic measurements for a clip.
// Pitch statistics are aggregated over voiced frames only; a clip with no
// voiced frames gets the documented fallback constants and a Fallback flag.
func (fe *FeatureExtractor) ExtractRawFeatures(pcm []float64, sampleRate int) (*RawFeatures, error) {
	logger := fe.logger.WithFields(logging.Fields{"function": "ExtractRawFeatures"})

	pcm = fe.bound(pcm, sampleRate)
	if len(pcm) < fe.cfg.WindowSize {
		return nil, fmt.Errorf("clip too short for analysis: %d samples", len(pcm))
	}

	stftResult, err := fe.stft.ComputeWithWindow(pcm, fe.cfg.WindowSize, fe.cfg.HopSize,
		sampleRate, windowing.NewHann(fe.cfg.WindowSize, false))
	if err != nil {
		return nil, fmt.Errorf("stft failed: %w", err)
	}

	centroid := spectral.NewSpectralCentroid(sampleRate)
	centroids := centroid.ComputeFrames(stftResult.Magnitude)
	bandwidth := spectral.NewSpectralBandwidth(sampleRate)
	bandwidths := bandwidth.ComputeFrames(stftResult.Magnitude, centroids)
	rolloff := spectral.NewSpectralRolloff(sampleRate)
	rolloffs := rolloff.ComputeFrames(stftResult.Magnitude, 0.85)

	energy := temporal.NewEnergy(fe.cfg.WindowSize, fe.cfg.HopSize, sampleRate)
	rms := energy.ComputeRMS(pcm)

	zcr := spectral.NewZeroCrossingRateWithParams(sampleRate, fe.cfg.WindowSize, fe.cfg.HopSize)
	zcrs := zcr.ComputeFramesNormalized(pcm)

	tracker := tonal.NewPitchTrackerWithParams(tonal.PitchTrackerParams{
		SampleRate:       sampleRate,
		WindowSize:       fe.cfg.WindowSize,
		HopSize:          fe.cfg.HopSize,
		MinFreq:          fe.cfg.PitchMinFreq,
		MaxFreq:          fe.cfg.PitchMaxFreq,
		VoicingThreshold: 0.3,
	})
	pitchTrack, err := tracker.Track(pcm)
	if err != nil {
		return nil, fmt.Errorf("pitch tracking failed: %w", err)
	}

	features := &RawFeatures{
		Duration:              float64(len(pcm)) / float64(sampleRate),
		SampleRate:            sampleRate,
		SpectralCentroidMean:  stats.Summarize(centroids).Mean,
		SpectralBandwidthMean: stats.Summarize(bandwidths).Mean,
		SpectralRolloffMean:   stats.Summarize(rolloffs).Mean,
		ZeroCrossingRateMean:  stats.Summarize(zcrs).Mean,
	}
	rmsSummary := stats.Summarize(rms)
	features.RMSMean = rmsSummary.Mean
	features.RMSStd = rmsSummary.Std

	voiced := stats.FilterPositive(pitchTrack)
	if len(voiced) == 0 {
		fb := config.DefaultUnvoicedFallback()
		features.PitchMean = fb.Mean
		features.PitchStd = fb.Std
		features.PitchMin = fb.Min
		features.PitchMax = fb.Max
		features.Fallback = FallbackUnvoiced
		logger.Warn("No voiced frames, using pitch fallback", logging.Fields{
			"frames": len(pitchTrack),
		})
	} else {
		pitchSummary := stats.Summarize(voiced)
		features.PitchMean = pitchSummary.Mean
		features.PitchStd = pitchSummary.Std
		features.PitchMin = pitchSummary.Min
		features.PitchMax = pitchSummary.Max
	}

	logger.Debug("Raw features extracted", logging.Fields{
		"duration":   features.Duration,
		"pitch_mean": features.PitchMean,
		"centroid":   features.SpectralCentroidMean,
		"rms_mean":   features.RMSMean,
	})
	return features, nil
}

// ExtractTimbreVector computes the clip's timbre vector: the MFCC matrix,
// its first and second time-derivatives, each time-averaged and concatenated
// MFCC means first, then delta means, then delta-delta means.
func (fe *FeatureExtractor) ExtractTimbreVector(pcm []float64, sampleRate int) (TimbreVector, error) {
	pcm = fe.bound(pcm, sampleRate)
	if len(pcm) < fe.cfg.WindowSize {
		return TimbreVector{}, fmt.Errorf("clip too short for analysis: %d samples", len(pcm))
	}

	stftResult, err := fe.stft.ComputeWithWindow(pcm, fe.cfg.WindowSize, fe.cfg.HopSize,
		sampleRate, windowing.NewHann(fe.cfg.WindowSize, false))
	if err != nil {
		return TimbreVector{}, fmt.Errorf("stft failed: %w", err)
	}

	mfccFrames, err := fe.mfcc.ComputeFrames(stftResult.Magnitude)
	if err != nil {
		return TimbreVector{}, fmt.Errorf("mfcc failed: %w", err)
	}
	deltaFrames, err := fe.delta.Compute(mfccFrames, 1)
	if err != nil {
		return TimbreVector{}, fmt.Errorf("delta failed: %w", err)
	}
	deltaDeltaFrames, err := fe.delta.Compute(mfccFrames, 2)
	if err != nil {
		return TimbreVector{}, fmt.Errorf("delta-delta failed: %w", err)
	}

	coeffs := make([]float64, 0, 3*fe.cfg.MFCCCoefficients)
	coeffs = append(coeffs, columnMeans(mfccFrames, fe.cfg.MFCCCoefficients)...)
	coeffs = append(coeffs, columnMeans(deltaFrames, fe.cfg.MFCCCoefficients)...)
	coeffs = append(coeffs, columnMeans(deltaDeltaFrames, fe.cfg.MFCCCoefficients)...)

	vector := TimbreVector{Version: config.VectorVersion, Coefficients: coeffs}
	if err := vector.Validate(); err != nil {
		return TimbreVector{}, err
	}
	return vector, nil
}

// bound truncates the waveform to the configured analysis window
func (fe *FeatureExtractor) bound(pcm []float64, sampleRate int) []float64 {
	if fe.cfg.MaxSeconds <= 0 {
		return pcm
	}
	maxSamples := int(fe.cfg.MaxSeconds * float64(sampleRate))
	if len(pcm) > maxSamples {
		return pcm[:maxSamples]
	}
	return pcm
}

// columnMeans averages a frames-by-coefficients matrix over time
func columnMeans(frames [][]float64, numCoefficients int) []float64 {
	means := make([]float64, numCoefficients)
	if len(frames) == 0 {
		return means
	}
	for _, frame := range frames {
		for c := 0; c < numCoefficients && c < len(frame); c++ {
			means[c] += frame[c]
		}
	}
	for c := range means {
		means[c] /= float64(len(frames))
	}
	return means
}
