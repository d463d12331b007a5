package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeat(t *testing.T) {
	tests := []struct {
		in      string
		want    Seat
		wantErr error
	}{
		{in: "2-5A", want: Seat{Car: 2, Code: "5A"}},
		{in: " 12A ", want: Seat{Code: "12A"}},
		{in: "", wantErr: ErrEmptySeat},
		{in: "   ", wantErr: ErrEmptySeat},
		{in: "0-5A", wantErr: ErrMalformedSeat},
		{in: "x-5A", wantErr: ErrMalformedSeat},
		{in: "3-", wantErr: ErrMalformedSeat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeat(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeat_String(t *testing.T) {
	assert.Equal(t, "2-5A", Seat{Car: 2, Code: "5A"}.String())
	assert.Equal(t, "12A", Seat{Code: "12A"}.String())
}
