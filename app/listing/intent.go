package listing

import "strings"

// Intent is the classified command type of an inbound message.
type Intent int

const (
	IntentNone Intent = iota
	IntentAdd
	IntentUpdate
	IntentDelete
)

func (i Intent) String() string {
	switch i {
	case IntentAdd:
		return "add"
	case IntentUpdate:
		return "update"
	case IntentDelete:
		return "delete"
	default:
		return "none"
	}
}

// intentKeywords in fixed priority order: Add before Update before Delete.
// A subject containing more than one keyword resolves to the earliest.
var intentKeywords = []struct {
	keyword string
	intent  Intent
}{
	{"add listing", IntentAdd},
	{"update listing", IntentUpdate},
	{"delete listing", IntentDelete},
}

// ClassifyIntent determines the command type from a subject line by
// case-insensitive substring match. Subjects matching no keyword yield
// IntentNone and the message is skipped without side effects.
func ClassifyIntent(subject string) Intent {
	s := strings.ToLower(subject)
	for _, k := range intentKeywords {
		if strings.Contains(s, k.keyword) {
			return k.intent
		}
	}
	return IntentNone
}
