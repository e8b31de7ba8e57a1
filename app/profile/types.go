package profile

// Photo acquisition modes. Exactly one is active per deployment.
const (
	ModeAttachments = "attachments"
	ModeLinks       = "links"
)

// Profile is the per-deployment YAML configuration: site identity,
// listing field defaults, and the photo acquisition strategy.
type Profile struct {
	Site     Site     `yaml:"site"`
	Defaults Defaults `yaml:"defaults"`
	Photos   Photos   `yaml:"photos"`
}

// Site identifies the published destination, used in confirmation emails
// and commit messages.
type Site struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
}

// Defaults are applied by Add when the corresponding field is absent from
// the email body.
type Defaults struct {
	City  string `yaml:"city"`
	State string `yaml:"state"`
	Agent string `yaml:"agent"`
}

// Photos selects and parameterizes the photo acquisition mode.
type Photos struct {
	Mode       string   `yaml:"mode"`       // attachments | links
	URLPrefix  string   `yaml:"url_prefix"` // required in links mode
	Extensions []string `yaml:"extensions"` // attachment file types to collect
}
