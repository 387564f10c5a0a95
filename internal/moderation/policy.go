package moderation

import "time"

// Action is the outcome class of evaluating one candidate message.
type Action int

const (
	// ActionAllow delivers the message untouched.
	ActionAllow Action = iota
	// ActionSanitize delivers a cleaned message with no feedback to the sender.
	ActionSanitize
	// ActionWarn delivers a cleaned message and privately warns the sender.
	ActionWarn
	// ActionMute delivers a cleaned message, privately notifies the sender and
	// suspends further posting for MuteDuration.
	ActionMute
)

// Decision is the result of evaluating a candidate message against a sender's
// infraction history. The message is delivered in every case; CleanText is
// what gets persisted and broadcast.
type Decision struct {
	Action       Action
	CleanText    string
	NewCount     int
	MuteDuration time.Duration
}

// Profane reports whether the decision counted an infraction.
func (d Decision) Profane() bool {
	return d.Action != ActionAllow
}

// Policy decides what happens to a candidate message. It is a pure function
// of the sender's current infraction count and the text; it never touches
// shared state.
type Policy struct {
	WarnThreshold int
	MuteThreshold int
	MuteDuration  time.Duration
}

// DefaultPolicy returns the fixed production thresholds: second infraction
// warns, third and every later one mutes for ten minutes.
func DefaultPolicy() Policy {
	return Policy{
		WarnThreshold: 2,
		MuteThreshold: 3,
		MuteDuration:  10 * time.Minute,
	}
}

// Evaluate applies the policy to one candidate message.
// Non-profane text never increments the count and never produces feedback.
func (p Policy) Evaluate(count int, text string, filter Filter) Decision {
	if !filter.IsProfane(text) {
		return Decision{Action: ActionAllow, CleanText: text, NewCount: count}
	}

	clean := filter.Clean(text)
	newCount := count + 1

	switch {
	case newCount >= p.MuteThreshold:
		return Decision{Action: ActionMute, CleanText: clean, NewCount: newCount, MuteDuration: p.MuteDuration}
	case newCount == p.WarnThreshold:
		return Decision{Action: ActionWarn, CleanText: clean, NewCount: newCount}
	default:
		return Decision{Action: ActionSanitize, CleanText: clean, NewCount: newCount}
	}
}
