package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"autumn", "hidden", "bitter", "misty", "silent", "empty", "dry", "dark",
		"hollow", "quiet", "distant", "muffled", "ringing", "fading", "faint",
		"bright", "warm", "cold", "damp", "late", "lingering", "bold", "little",
		"still", "small", "shy", "wandering", "wild", "solitary", "restless",
		"polished", "lively", "nameless", "lucky", "crystal", "brass", "velvet",
	}

	nouns = []string{
		"echo", "reverb", "chamber", "hall", "cathedral", "canyon", "cave", "tunnel",
		"river", "breeze", "moon", "rain", "wind", "sea", "snow", "lake", "shadow",
		"forest", "hill", "cloud", "meadow", "bell", "drum", "chord", "choir",
		"silence", "sound", "thunder", "wave", "resonance", "voice", "rhythm",
		"whisper", "murmur", "hum", "ripple", "horn", "string", "organ",
	}
)

// GenerateExperimentName creates a memorable experiment identifier
// in the format "adjective-noun"
func GenerateExperimentName(rng *rand.Rand) string {
	adj := adjectives[rng.Intn(len(adjectives))]
	noun := nouns[rng.Intn(len(nouns))]

	return adj + "-" + noun
}

// GenerateExperimentID creates a unique experiment identifier by combining
// the memorable name with a timestamp
func GenerateExperimentID(now time.Time) string {
	rng := rand.New(rand.NewSource(now.UnixNano()))
	return GenerateExperimentName(rng) + "-" + now.Format("20060102-150405")
}
