package pipeline

import (
	"bytes"
	"os"

	"github.com/jhillyerd/enmime"

	"c3track/internal"
	"c3track/internal/grammar"
)

// OneShotResult is the board-free extraction of a single saved notification.
type OneShotResult struct {
	Vendor  internal.VendorFormat      `json:"vendor"`
	Subject string                     `json:"subject"`
	Record  internal.AppointmentRecord `json:"record"`
}

// ExtractFromEmailFile parses a saved .eml notification and runs its subject
// and body through the grammar engine without touching the board. Useful for
// checking grammar changes against captured vendor mail.
func ExtractFromEmailFile(path string) (OneShotResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return OneShotResult{}, err
	}
	return ExtractFromEmailRaw(raw)
}

func ExtractFromEmailRaw(raw []byte) (OneShotResult, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return OneShotResult{}, err
	}

	subject := env.GetHeader("Subject")
	body := env.HTML
	if body == "" {
		body = env.Text
	}

	item := internal.WorkItem{
		ID:      "eml",
		Name:    subject,
		Updates: []internal.RawUpdate{{ID: "1", Body: body}},
	}
	g := grammar.Detect(subject)
	return OneShotResult{
		Vendor:  g.Vendor(),
		Subject: subject,
		Record:  g.Extract(item),
	}, nil
}
