package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/growth-partner/pkg/mailer"
)

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "Your goal is due soon", SubjectFor(&mailer.NotificationJob{Type: "GOAL_DUE_SOON"}))
	assert.Equal(t, "Notification", SubjectFor(&mailer.NotificationJob{Type: "other"}))
}

func TestEnsureRecipientAndMergeDefaults(t *testing.T) {
	job := &mailer.NotificationJob{To: "ann@x.com", Data: map[string]any{"AppName": ""}}
	EnsureRecipientAndEmail(job)
	MergeDefaults(job, map[string]any{"AppName": "growth-partner", "Email": "ignored@x.com"})

	assert.Equal(t, "ann@x.com", job.Data["Email"])
	assert.Equal(t, "growth-partner", job.Data["AppName"])

	empty := &mailer.NotificationJob{}
	MergeDefaults(empty, map[string]any{"LogoURL": "l"})
	assert.Equal(t, "l", empty.Data["LogoURL"])
}

func TestTimeHelpers(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 891234567, time.FixedZone("X", 3600))
	assert.Equal(t, "2025-03-04T04:06:07.891Z", FormatISO(ts))

	got, err := ParseISO("2025-03-04T04:06:07.891Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(ts.Truncate(time.Millisecond)))

	got, err = ParseISO("2025-03-04T05:06:07+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseISO("yesterday")
	assert.Error(t, err)

	d, err := ParseDate("2030-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), d)

	assert.Equal(t, 0, NowMillis().Nanosecond()%int(time.Millisecond))
}

func TestGCSStoreURL(t *testing.T) {
	s := NewGCSStore(nil, "b")
	assert.Equal(t, "https://storage.googleapis.com/b/snapshots/u1.json", s.URL("snapshots/u1.json"))
}
