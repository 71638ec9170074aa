package sharelink_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/nestnote/nestnote/pkg/invitecode"
	"github.com/nestnote/nestnote/pkg/sharelink"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	links, err := sharelink.Build("123456", "")
	require.NoError(t, err)
	require.Equal(t, "123-456", links.Code)
	require.Equal(t, "nestnote://invite?code=123-456", links.DeepLink)
	require.Equal(t, "https://nestnoteapp.com/invite?code=123-456", links.WebURL)

	t.Run("custom web base", func(t *testing.T) {
		links, err := sharelink.Build("987654", "https://staging.nestnoteapp.com")
		require.NoError(t, err)
		require.Equal(t, "https://staging.nestnoteapp.com/invite?code=987-654", links.WebURL)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		_, err := sharelink.Build("12345", "")
		require.ErrorIs(t, err, invitecode.ErrInvalid)
	})
}

func TestLinksRoundTripThroughNormalize(t *testing.T) {
	t.Parallel()

	// Whatever a client scans or taps must normalize back to the same code.
	links, err := sharelink.Build("040506", "")
	require.NoError(t, err)

	for _, payload := range []string{links.DeepLink, links.WebURL, links.Code} {
		got, err := invitecode.Normalize(payload)
		require.NoError(t, err)
		require.Equal(t, "040506", got)
	}
}

func TestQRPNG(t *testing.T) {
	t.Parallel()

	links, err := sharelink.Build("123456", "")
	require.NoError(t, err)

	data, err := links.QRPNG(0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, sharelink.DefaultQRSize, img.Bounds().Dx())
	require.Equal(t, sharelink.DefaultQRSize, img.Bounds().Dy())
}
