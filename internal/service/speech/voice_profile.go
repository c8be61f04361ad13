package speech

import "strings"

// VoiceID resolves a caller-facing voice preference to a provider voice model.
// Unknown preferences fall back to the female voice.
func VoiceID(preference string) string {
	switch strings.ToLower(strings.TrimSpace(preference)) {
	case "male":
		return "aura-orion-en"
	default:
		return "aura-asteria-en"
	}
}
