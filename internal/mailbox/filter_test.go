package mailbox

import (
	"testing"

	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mail(id, senderID uint, subject, body, mailType string) models.TeamMail {
	return models.TeamMail{
		Model:    gorm.Model{ID: id},
		TeamID:   1,
		SenderID: senderID,
		Subject:  subject,
		Body:     body,
		MailType: mailType,
	}
}

func sampleMails() []models.TeamMail {
	kickoff := mail(1, 10, "Kickoff meeting", "Saturday at 10am", "meeting")
	urgent := mail(2, 11, "Urgent: meeting moved", "New room is 204", "alert")
	archived := mail(3, 10, "Old thread", "stale discussion", "team")
	archived.IsArchived = true
	starred := mail(4, 12, "Design mockups", "see the figma link", "update")
	starred.IsStarred = true

	return []models.TeamMail{kickoff, urgent, archived, starred}
}

func TestFilterInboxExcludesArchived(t *testing.T) {
	mails := sampleMails()

	inbox := Filter(mails, Query{Folder: FolderInbox, ViewerID: 10})
	archived := Filter(mails, Query{Folder: FolderArchived, ViewerID: 10})

	require.Len(t, inbox, 3)
	require.Len(t, archived, 1)

	// No mail may show up in both views of the same snapshot.
	for _, in := range inbox {
		for _, arch := range archived {
			assert.NotEqual(t, in.ID, arch.ID)
		}
	}
}

func TestFilterSentFolder(t *testing.T) {
	sent := Filter(sampleMails(), Query{Folder: FolderSent, ViewerID: 10})

	require.Len(t, sent, 2)
	assert.Equal(t, uint(1), sent[0].ID)
	assert.Equal(t, uint(3), sent[1].ID)
}

func TestFilterStarredFolder(t *testing.T) {
	starred := Filter(sampleMails(), Query{Folder: FolderStarred, ViewerID: 10})

	require.Len(t, starred, 1)
	assert.Equal(t, uint(4), starred[0].ID)
}

func TestFilterSubjectMatchIsSufficient(t *testing.T) {
	// "urgent" appears only in the subject, not the body.
	visible := Filter(sampleMails(), Query{Search: "urgent", Folder: FolderInbox, ViewerID: 10})

	require.Len(t, visible, 1)
	assert.Equal(t, uint(2), visible[0].ID)
}

func TestFilterSenderNameMatch(t *testing.T) {
	q := Query{
		Search:      "priya",
		Folder:      FolderInbox,
		ViewerID:    10,
		SenderNames: map[uint]string{11: "Priya Sharma"},
	}

	visible := Filter(sampleMails(), q)

	require.Len(t, visible, 1)
	assert.Equal(t, uint(2), visible[0].ID)
}

func TestFilterTypeFacet(t *testing.T) {
	meetings := Filter(sampleMails(), Query{MailType: "meeting", Folder: FolderInbox, ViewerID: 10})

	require.Len(t, meetings, 1)
	assert.Equal(t, uint(1), meetings[0].ID)

	all := Filter(sampleMails(), Query{MailType: MailTypeAll, Folder: FolderInbox, ViewerID: 10})
	assert.Len(t, all, 3)
}

func TestFilterIdempotent(t *testing.T) {
	q := Query{Search: "meeting", MailType: MailTypeAll, Folder: FolderInbox, ViewerID: 10}

	once := Filter(sampleMails(), q)
	twice := Filter(once, q)

	assert.Equal(t, once, twice)
}

func TestValidFolder(t *testing.T) {
	for _, name := range []string{"inbox", "sent", "starred", "archived"} {
		assert.True(t, ValidFolder(name))
	}

	assert.False(t, ValidFolder("trash"))
	assert.False(t, ValidFolder(""))
}
