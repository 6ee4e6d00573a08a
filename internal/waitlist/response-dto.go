package waitlist

// NotifyFailure is one entry the notifier could not reach
type NotifyFailure struct {
	WaitlistID string `json:"waitlist_id"`
	Email      string `json:"email"`
	Error      string `json:"error"`
}

// NotifyResult summarizes one sweep over an event's waiting entries
type NotifyResult struct {
	EventID     string          `json:"event_id"`
	Attempted   int             `json:"attempted"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	NotifiedIDs []string        `json:"notified_ids"`
	Failures    []NotifyFailure `json:"failures"`
}
