package achievements_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thriveremote/thrive-server/achievements"
)

func TestCatalog_IsStableAndComplete(t *testing.T) {
	catalog := achievements.Catalog()
	require.Len(t, catalog, 8)

	ids := make([]string, 0, len(catalog))
	for _, def := range catalog {
		require.NotEmpty(t, def.Category)
		require.NotEmpty(t, def.Title)
		require.NotEmpty(t, def.Description)
		require.NotEmpty(t, def.Icon)
		ids = append(ids, def.ID)
	}
	require.Equal(t, []string{
		achievements.FirstJobApply,
		achievements.SavingsMilestone25,
		achievements.SavingsMilestone50,
		achievements.TaskMaster,
		achievements.TerminalNinja,
		achievements.PongChampion,
		achievements.EasterHunter,
		achievements.StreakWeek,
	}, ids)
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	first := achievements.Catalog()
	first[0].Title = "mutated"

	require.NotEqual(t, "mutated", achievements.Catalog()[0].Title)
}
