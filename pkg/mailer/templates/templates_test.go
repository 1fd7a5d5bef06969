package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/pkg/mailer"
)

func TestRenderAllTypes(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]any
		wantSubject string
	}{
		{
			name:        mailer.TypeGoalDueSoon,
			data:        map[string]any{"Name": "Ann", "Goal": "Learn Go", "DaysLeft": 2, "Body": "2 day(s) left"},
			wantSubject: "Learn Go is due in 2 day(s)",
		},
		{
			name:        mailer.TypeGoalStatusUpdated,
			data:        map[string]any{"Name": "Ann", "Goal": "Learn Go", "Status": "completed", "Body": "done"},
			wantSubject: "Learn Go is now completed",
		},
		{
			name:        mailer.TypeMotivational,
			data:        map[string]any{"Name": "Ann", "Body": "Keep going!"},
			wantSubject: "Keep going",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, text, html, err := Render(tt.name, tt.data)
			require.NoError(t, err)
			assert.Contains(t, subject, tt.wantSubject)
			assert.Contains(t, text, "Hi Ann,")
			assert.Contains(t, text, "-- Growth Partner")
			assert.Contains(t, html, "<p>Hi Ann,</p>")
		})
	}
}

func TestRenderUnknownType(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render(mailer.TypeMotivational, map[string]any{"Body": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Hi there,")
}

func TestBaseData(t *testing.T) {
	cfg := &config.Config{AppName: "growth-partner", CompanyName: "Acme", SupportURL: "https://a/support"}
	d := NewBaseData(cfg, WithUnsubscribeURL("https://a/unsub"))
	assert.Equal(t, "https://a/support", d.SupportURL)
	assert.Equal(t, "https://a/unsub", d.UnsubscribeURL)

	d = NewBaseData(cfg, WithSupportURL("https://b/help"))
	m := ToMap(d)
	assert.Equal(t, "https://b/help", m["SupportURL"])
	assert.Equal(t, "Acme", m["CompanyName"])

	_, text, _, err := Render(mailer.TypeMotivational, m)
	require.NoError(t, err)
	assert.Contains(t, text, "-- growth-partner")
}

func TestTypesMatchNotificationKinds(t *testing.T) {
	assert.ElementsMatch(t, []string{mailer.TypeGoalDueSoon, mailer.TypeGoalStatusUpdated, mailer.TypeMotivational}, Types())
}
