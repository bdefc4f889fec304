package email

// Wire types for the provider's POST /mail/send body. The content_type key
// is what the provider expects; do not "fix" it to type.
type sendEmailBody struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []contentPart     `json:"content"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type contentPart struct {
	ContentType string `json:"content_type"`
	Value       string `json:"value"`
}
