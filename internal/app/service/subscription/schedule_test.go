package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hilalgiving/ledger/pkg/types"
)

func TestNextPaymentDate_AllFrequencies(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	tests := []struct {
		name string
		from time.Time
		freq types.Frequency
		loc  *time.Location
		want string
	}{
		{
			name: "weekly adds seven days",
			from: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
			freq: types.FrequencyWeekly,
			loc:  time.UTC,
			want: "2025-03-17",
		},
		{
			name: "fortnightly adds fourteen days",
			from: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			freq: types.FrequencyFortnightly,
			loc:  time.UTC,
			want: "2025-03-24",
		},
		{
			name: "monthly plain",
			from: time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC),
			freq: types.FrequencyMonthly,
			loc:  time.UTC,
			want: "2025-05-15",
		},
		{
			name: "monthly clamps jan 31 to feb 28",
			from: time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
			freq: types.FrequencyMonthly,
			loc:  time.UTC,
			want: "2025-02-28",
		},
		{
			name: "monthly clamps jan 31 to feb 29 in leap year",
			from: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
			freq: types.FrequencyMonthly,
			loc:  time.UTC,
			want: "2024-02-29",
		},
		{
			name: "monthly clamps may 31 to jun 30",
			from: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			freq: types.FrequencyMonthly,
			loc:  time.UTC,
			want: "2025-06-30",
		},
		{
			name: "monthly across year boundary",
			from: time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC),
			freq: types.FrequencyMonthly,
			loc:  time.UTC,
			want: "2026-01-31",
		},
		{
			name: "yearly clamps feb 29 to feb 28",
			from: time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC),
			freq: types.FrequencyYearly,
			loc:  time.UTC,
			want: "2025-02-28",
		},
		{
			name: "yearly plain",
			from: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			freq: types.FrequencyYearly,
			loc:  time.UTC,
			want: "2026-07-01",
		},
		{
			name: "unknown frequency falls back to monthly",
			from: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			freq: types.Frequency("daily"),
			loc:  time.UTC,
			want: "2025-07-10",
		},
		{
			name: "timezone shifts the calendar date",
			// 15:00 UTC on Mar 10 is already Mar 11 in Sydney, so weekly lands
			// on Mar 18 there.
			from: time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
			freq: types.FrequencyWeekly,
			loc:  sydney,
			want: "2025-03-18",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextPaymentDate(tc.from, tc.freq, tc.loc)
			require.Equal(t, tc.want, got.Format(time.DateOnly))
			require.Equal(t, tc.loc, got.Location())

			// date-only: no time-of-day component survives
			require.Equal(t, 0, got.Hour())
			require.Equal(t, 0, got.Minute())
			require.Equal(t, 0, got.Second())
		})
	}
}
