package moderation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// substringFilter flags any text containing the needle.
type substringFilter struct {
	needle string
}

func (f substringFilter) IsProfane(text string) bool {
	return strings.Contains(text, f.needle)
}

func (f substringFilter) Clean(text string) string {
	return strings.ReplaceAll(text, f.needle, strings.Repeat("*", len(f.needle)))
}

func TestEvaluateCleanTextIsUntouched(t *testing.T) {
	req := require.New(t)
	filter := substringFilter{needle: "darn"}
	policy := DefaultPolicy()

	for _, count := range []int{0, 1, 5, 100} {
		d := policy.Evaluate(count, "lovely day in lisbon", filter)
		req.Equal(ActionAllow, d.Action)
		req.Equal("lovely day in lisbon", d.CleanText)
		req.Equal(count, d.NewCount, "clean text must never touch the counter")
		req.False(d.Profane())
	}
}

func TestEvaluateEscalation(t *testing.T) {
	req := require.New(t)
	filter := substringFilter{needle: "darn"}
	policy := DefaultPolicy()

	// First infraction: sanitized, silent.
	d := policy.Evaluate(0, "darn it", filter)
	req.Equal(ActionSanitize, d.Action)
	req.Equal("**** it", d.CleanText)
	req.Equal(1, d.NewCount)

	// Second: sanitized plus warning.
	d = policy.Evaluate(d.NewCount, "darn again", filter)
	req.Equal(ActionWarn, d.Action)
	req.Equal(2, d.NewCount)

	// Third: mute for the fixed duration.
	d = policy.Evaluate(d.NewCount, "darn!", filter)
	req.Equal(ActionMute, d.Action)
	req.Equal(3, d.NewCount)
	req.Equal(10*time.Minute, d.MuteDuration)

	// Every later infraction stays a mute with a fresh window.
	d = policy.Evaluate(d.NewCount, "darn...", filter)
	req.Equal(ActionMute, d.Action)
	req.Equal(4, d.NewCount)
	req.Equal(10*time.Minute, d.MuteDuration)
}

func TestEvaluateAlwaysDelivers(t *testing.T) {
	req := require.New(t)
	filter := substringFilter{needle: "darn"}
	policy := DefaultPolicy()

	for count := 0; count < 5; count++ {
		d := policy.Evaluate(count, "darn", filter)
		req.Equal("****", d.CleanText, "the sanitized text is delivered at every level")
		req.True(d.Profane())
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	req := require.New(t)
	filter := substringFilter{needle: "darn"}
	policy := Policy{WarnThreshold: 1, MuteThreshold: 2, MuteDuration: time.Minute}

	d := policy.Evaluate(0, "darn", filter)
	req.Equal(ActionWarn, d.Action)

	d = policy.Evaluate(d.NewCount, "darn", filter)
	req.Equal(ActionMute, d.Action)
	req.Equal(time.Minute, d.MuteDuration)
}
