package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleTags_CreatesPresenceOnlyTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("preview", "manual")

	require.Len(t, tags, 2)
	require.Equal(t, struct{}{}, tags["preview"])
	require.Equal(t, struct{}{}, tags["manual"])
}

func TestTags_First(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Tags{}.First())
	require.Equal(t, "alpha", SimpleTags("preview", "alpha", "manual").First())
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	require.Equal(t, "John Doe <john@example.com>", Recipient("John Doe", "john@example.com"))
	require.Equal(t, "john@example.com", Recipient("", "john@example.com"))
}
