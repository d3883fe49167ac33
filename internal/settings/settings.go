// Package settings persists the email composer settings document.
//
// Exactly one document exists. It is stored as a single JSON blob under
// StorageKey in an injected key-value Medium. Reads never fail: a missing or
// corrupt value is masked by a freshly synthesized default. Writes replace the
// full document and either persist completely or return ErrPersistence.
package settings

import "time"

// Provider selects which transport configuration is active.
type Provider string

const (
	// ProviderWebhook dispatches composed emails to an HTTP endpoint.
	ProviderWebhook Provider = "webhook"
	// ProviderSMTP dispatches composed emails through an SMTP relay.
	ProviderSMTP Provider = "smtp"

	// DefaultSMTPPort is the submission port used for new documents.
	DefaultSMTPPort = 587
)

type (
	// Header is a single HTTP header sent with a webhook request.
	Header struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// BodyMapping maps the logical fields of a composed email to the
	// field names expected by the webhook receiver.
	BodyMapping struct {
		Recipients string `json:"recipients"`
		CCList     string `json:"ccList"`
		Subject    string `json:"subject"`
		HTMLBody   string `json:"htmlBody"`
	}

	// Webhook holds the webhook transport configuration.
	Webhook struct {
		URL         string      `json:"url"         validate:"omitempty,url"`
		Headers     []Header    `json:"headers"     validate:"dive"`
		BodyMapping BodyMapping `json:"bodyMapping"`
	}

	// SMTP holds the SMTP transport configuration.
	SMTP struct {
		Host      string `json:"host"      validate:"omitempty,hostname_rfc1123|ip"`
		Port      int    `json:"port"      validate:"min=0,max=65535"`
		Secure    bool   `json:"secure"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		FromEmail string `json:"fromEmail" validate:"omitempty,email"`
		FromName  string `json:"fromName"`
	}

	// Settings is the persisted settings document.
	//
	// EmailProvider and the inactive transport branch are not checked
	// against each other; an SMTP block may be filled while the webhook
	// provider is selected.
	Settings struct {
		EmailProvider Provider  `json:"emailProvider" validate:"required,oneof=webhook smtp"`
		Webhook       Webhook   `json:"webhook"`
		SMTP          SMTP      `json:"smtp"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}
)

// Default returns a new default document stamped with now.
func Default(now time.Time) Settings {
	return Settings{
		EmailProvider: ProviderWebhook,
		Webhook: Webhook{
			URL:     "",
			Headers: []Header{},
			BodyMapping: BodyMapping{
				Recipients: "to",
				CCList:     "cc",
				Subject:    "subject",
				HTMLBody:   "html",
			},
		},
		SMTP: SMTP{
			Port:   DefaultSMTPPort,
			Secure: false,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
