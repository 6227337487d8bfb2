package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where LinkWriter is expected
	var _ harvest.LinkWriter = &mock.LinkWriter{}
}

func TestLinkWriter_WriteLinks(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteLinksFn", func(t *testing.T) {
		t.Parallel()

		var calledWith []string
		w := &mock.LinkWriter{
			WriteLinksFn: func(_ context.Context, links []string) error {
				calledWith = links
				return nil
			},
		}

		links := []string{"https://example.com/a.pdf", "https://example.com/b.pdf"}

		err := w.WriteLinks(context.Background(), links)

		require.NoError(t, err)
		assert.Equal(t, links, calledWith)
	})
}

func TestLinkElement_ReturnsHref(t *testing.T) {
	t.Parallel()

	el := mock.LinkElement("https://example.com/doc")

	href, err := el.Href(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/doc", href)
}
