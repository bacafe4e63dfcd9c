package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntentAcceptsWholeTaxonomy(t *testing.T) {
	for _, intent := range Intents {
		got, err := ParseIntent(string(intent))
		require.NoError(t, err)
		require.Equal(t, intent, got)
	}
}

func TestParseIntentRejectsOutsiders(t *testing.T) {
	for _, s := range []string{"", "unknown", "INFO-ANIMAL-HEALTH", "info-animal-health ", "escalated_to_agent"} {
		_, err := ParseIntent(s)
		require.Error(t, err, "value %q", s)
	}
}
