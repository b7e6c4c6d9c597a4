package donation

// CreatedEvent is published after a donation row is committed.
type CreatedEvent struct {
	Result Donation
}

// StatusChangedEvent is published after an operator override.
type StatusChangedEvent struct {
	Result    Donation
	OldStatus Status
}

func NewCreatedEvent(result Donation) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

func NewStatusChangedEvent(result Donation, old Status) *StatusChangedEvent {
	return &StatusChangedEvent{Result: result, OldStatus: old}
}
