package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/coastpass/web-e2e/tests/e2e/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMapFilterToggling verifies that switching between two categories
// changes the displayed venue count. The count after "Fitness" is only
// required to differ from the one after "Pool & beach"; the categories
// overlap, so no direction of change is assumed.
func TestMapFilterToggling(t *testing.T) {
	helpers.RunScenario(t, "filter toggling", helpers.SessionOptions{}, func(s *helpers.Scenario) {
		mp := helpers.NewMapPage(s.BrowserHelper)
		require.NoError(s, mp.Open())
		require.NoError(s, helpers.WaitVisible(mp.Surface(), 15*time.Second))
		require.NoError(s, helpers.WaitVisible(mp.VenueCount(), 10*time.Second),
			"Venue count heading should be visible")

		require.NoError(s, mp.Filter("Pool & beach").Click(),
			"Clicking the Pool & beach filter")
		require.NoError(s, s.WaitForNetworkIdle())
		poolText, err := mp.VenueCount().InnerText()
		require.NoError(s, err)
		require.NotEmpty(s, strings.TrimSpace(poolText))

		require.NoError(s, mp.Filter("Fitness").Click(),
			"Clicking the Fitness filter")
		fitnessText, err := helpers.WaitForTextChange(mp.VenueCount(), poolText, 10*time.Second)
		require.NoError(s, err, "Venue count should update after switching category")

		assert.NotEqual(s, strings.TrimSpace(poolText), strings.TrimSpace(fitnessText),
			"Pool & beach and Fitness should show different venue counts")
	})
}
