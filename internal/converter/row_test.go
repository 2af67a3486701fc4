package converter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/booking-invoicer/internal/converter"
)

// rawRow returns a 27-field row with the given fields set by column index.
func rawRow(fields map[int]string) []string {
	row := make([]string, 27)
	for i, v := range fields {
		row[i] = v
	}
	return row
}

func TestAdmissible(t *testing.T) {
	tests := []struct {
		first string
		want  bool
	}{
		{"1001", true},
		{"0", true},
		{"", false},
		{"Book number", false},
		{" 1001", false},
		{"1001a", false},
		{"-5", false},
		{"12.5", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, converter.Admissible(rawRow(map[int]string{0: tt.first})), "%q", tt.first)
	}
	assert.False(t, converter.Admissible(nil))
}

func TestNewBookingRow(t *testing.T) {
	raw := rawRow(map[int]string{
		0: "1001", 1: "Jan Novak", 3: "2024-05-01", 4: "2024-05-04",
		8: "3", 9: "2", 12: "300.00 EUR", 19: "sk", 23: "3", 26: "+421900",
		2: "ignored", 25: "ignored",
	})

	row, err := converter.NewBookingRow(raw)
	require.NoError(t, err)

	assert.Equal(t, converter.BookingRow{
		BookNumber:    "1001",
		BookedBy:      "Jan Novak",
		CheckIn:       "2024-05-01",
		CheckOut:      "2024-05-04",
		People:        "3",
		Adults:        "2",
		Price:         "300.00 EUR",
		BookerCountry: "sk",
		Duration:      "3",
		Phone:         "+421900",
	}, row)
}

func TestNewBookingRow_ShortRow(t *testing.T) {
	_, err := converter.NewBookingRow([]string{"1001", "Jan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing fields")
}
