package mail

// Summary is one entry of an inbox listing: enough to classify the
// message without fetching its body.
type Summary struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
}

// Message is the full content of one fetched email. Body is plain text;
// when the message only carried an HTML part, the gateway flattens it
// before handing it out.
type Message struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	Body     string `json:"body"`
	BodyHTML string `json:"body_html"`
}
