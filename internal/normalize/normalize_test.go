package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"iso with Z", "2024-03-05T14:07:09Z", true},
		{"space separated", "2024-03-05 14:07:09", true},
		{"us date", "03/05/2024 14:07:09", true},
		{"surrounding whitespace", "  2024-03-05 14:07:09\r\n", true},
		{"empty", "", false},
		{"iso with offset", "2024-03-05T14:07:09+02:00", false},
		{"date only", "2024-03-05", false},
		{"garbage", "yesterday at noon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, want.Equal(got), "got %s", got)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestComputeDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       string
	}{
		{"simple", "2024-01-01T10:00:00Z", "2024-01-01T11:02:03Z", "01:02:03"},
		{"mixed layouts", "2024-01-01 10:00:00", "01/01/2024 10:00:30", "00:00:30"},
		{"over a day", "2024-01-01T00:00:00Z", "2024-01-02T01:00:00Z", "25:00:00"},
		{"negative clamps", "2024-01-01T11:00:00Z", "2024-01-01T10:00:00Z", "00:00:00"},
		{"equal", "2024-01-01T10:00:00Z", "2024-01-01T10:00:00Z", "00:00:00"},
		{"bad start", "nope", "2024-01-01T10:00:00Z", ""},
		{"bad end", "2024-01-01T10:00:00Z", "", ""},
		{"both bad", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDuration(tt.start, tt.end))
		})
	}
}

func TestComputeDurationMatchesSeconds(t *testing.T) {
	base := time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)
	for _, secs := range []int{1, 59, 60, 3599, 3600, 86399, 86400, 360000 + 61} {
		start := base.Format("2006-01-02T15:04:05Z")
		end := base.Add(time.Duration(secs) * time.Second).Format("2006-01-02T15:04:05Z")
		assert.Equal(t, SecondsToHHMMSS(secs), ComputeDuration(start, end), "secs=%d", secs)
	}
}

func TestSecondsToHHMMSS(t *testing.T) {
	assert.Equal(t, "00:00:00", SecondsToHHMMSS(0))
	assert.Equal(t, "00:00:59", SecondsToHHMMSS(59))
	assert.Equal(t, "00:01:00", SecondsToHHMMSS(60))
	assert.Equal(t, "01:00:01", SecondsToHHMMSS(3601))
	assert.Equal(t, "100:00:00", SecondsToHHMMSS(360000))
	assert.Equal(t, "00:00:00", SecondsToHHMMSS(-15))
}

func TestSizeToGB(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5120 MB", "5.00"},
		{"1 GB", "1.00"},
		{"no unit here", "no unit here"},
		{"1048576 KB", "1.00"},
		{"1073741824 B", "1.00"},
		{"512mb", "0.50"},
		{"Total: 2.5 gb across 40 files", "2.50"},
		{"1536 MB then 9 GB", "1.50"},
		{"", ""},
		{". MB", ". MB"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeToGB(tt.in))
		})
	}
}

func TestExtractDate(t *testing.T) {
	assert.Equal(t, "2024-03-05", ExtractDate("2024-03-05T14:07:09Z"))
	assert.Equal(t, "2024-03-05", ExtractDate("2024-03-05"))
	assert.Equal(t, "03/05/2024", ExtractDate("03/05/2024 10:00:00"))
	assert.Equal(t, "", ExtractDate("2024-03"))
	assert.Equal(t, "", ExtractDate(""))
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "a b", Trim(" \t a b \r\n"))
	assert.Equal(t, "", Trim(" \t\r\n"))
}
