package resend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
)

func TestNew_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{SenderEmail: "a@example.com"})
	require.ErrorIs(t, err, mailer.ErrInvalidConfig)

	_, err = New(Config{APIKey: "re_test"})
	require.ErrorIs(t, err, mailer.ErrInvalidConfig)

	s, err := New(Config{APIKey: "re_test", SenderEmail: "team@example.com", SenderName: "Team"})
	require.NoError(t, err)
	require.Equal(t, "Team <team@example.com>", s.from)
}

func TestConvertTags(t *testing.T) {
	t.Parallel()

	tags := convertTags(mailer.Tags{"preview": struct{}{}, "attempt": 2})

	values := make(map[string]string, len(tags))
	for _, tag := range tags {
		values[tag.Name] = tag.Value
	}
	require.Equal(t, map[string]string{"preview": "true", "attempt": "2"}, values)
}
