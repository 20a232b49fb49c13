// Package mailbox implements the triage filter for a team's internal mail.
// Filtering happens over the full in-memory list; team mail volumes are tens
// of records, not thousands, so there is no pagination.
package mailbox

import (
	"strings"

	"github.com/hackhub-dev/hackhub/internal/models"
)

type Folder string

const (
	FolderInbox    Folder = "inbox"
	FolderSent     Folder = "sent"
	FolderStarred  Folder = "starred"
	FolderArchived Folder = "archived"
)

// MailTypeAll disables the type facet.
const MailTypeAll = "all"

// Query describes one triage view of a team's mailbox. ViewerID is the user
// the folder predicates are evaluated for, SenderNames resolves sender IDs
// for the free-text search.
type Query struct {
	Search      string
	MailType    string
	Folder      Folder
	ViewerID    uint
	SenderNames map[uint]string
}

// ValidFolder reports whether name is one of the four triage folders.
func ValidFolder(name string) bool {
	switch Folder(name) {
	case FolderInbox, FolderSent, FolderStarred, FolderArchived:
		return true
	}
	return false
}

// Filter returns the mails visible under q, preserving input order. A mail is
// visible only when the search, type facet and folder predicates all hold.
func Filter(mails []models.TeamMail, q Query) []models.TeamMail {
	visible := make([]models.TeamMail, 0, len(mails))

	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, mail := range mails {
		if !matchesSearch(mail, search, q.SenderNames) {
			continue
		}

		if q.MailType != "" && q.MailType != MailTypeAll && mail.MailType != q.MailType {
			continue
		}

		if !inFolder(mail, q.Folder, q.ViewerID) {
			continue
		}

		visible = append(visible, mail)
	}

	return visible
}

func matchesSearch(mail models.TeamMail, search string, senderNames map[uint]string) bool {
	if search == "" {
		return true
	}

	if strings.Contains(strings.ToLower(mail.Subject), search) {
		return true
	}

	if strings.Contains(strings.ToLower(mail.Body), search) {
		return true
	}

	return strings.Contains(strings.ToLower(senderNames[mail.SenderID]), search)
}

func inFolder(mail models.TeamMail, folder Folder, viewerID uint) bool {
	switch folder {
	case FolderSent:
		return mail.SenderID == viewerID
	case FolderStarred:
		return mail.IsStarred
	case FolderArchived:
		return mail.IsArchived
	default:
		// Inbox: everything not archived away.
		return !mail.IsArchived
	}
}
