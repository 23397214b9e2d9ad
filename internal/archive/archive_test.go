package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMarksExactlyOneYearActive(t *testing.T) {
	v, err := Build("reports", 2022, "en")
	require.NoError(t, err)
	require.Equal(t, 2022, v.Year)

	active := 0
	for _, y := range v.Years {
		if y.Active {
			active++
			require.Equal(t, 2022, y.Year)
		}
	}
	require.Equal(t, 1, active)
	require.Len(t, v.Years, len(Years))
}

func TestBuildUnknownYearDegradesToDefault(t *testing.T) {
	v, err := Build("budgets", 1999, "si")
	require.NoError(t, err)
	require.Equal(t, DefaultYear(), v.Year)
}

func TestBuildUnknownSection(t *testing.T) {
	_, err := Build("minutes", 2024, "si")
	require.ErrorIs(t, err, ErrUnknownSection)
}

func TestBuildLocalizesEntries(t *testing.T) {
	v, err := Build("budgets", 2024, "si")
	require.NoError(t, err)
	require.NotEmpty(t, v.Entries)
	e := v.Entries[0]
	require.Equal(t, "/?page=budget-2024&lang=si", e.Href)
	require.Equal(t, "2023-11-30", e.Published)
	require.Contains(t, e.Amount, "රු.")
}
