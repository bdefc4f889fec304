package domain

// NewsletterIssue is the transient input to a broadcast: a subject line and
// an HTML body. It is never persisted.
type NewsletterIssue struct {
	Title   string
	Content IssueContent
}

// IssueContent holds the rendered body of an issue.
type IssueContent struct {
	HTML string
}
