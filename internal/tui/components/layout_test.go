package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSheetLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		headerHeight  int
		rtl           bool
		want          SheetLayout
	}{
		{
			name: "ltr", width: 80, height: 24, headerHeight: 3,
			want: SheetLayout{ContentX: 0, ContentWidth: 79, ScrollbarX: 79, HeaderY: 1, BodyY: 4, BodyHeight: 18},
		},
		{
			name: "rtl moves scrollbar to the left", width: 80, height: 24, headerHeight: 2, rtl: true,
			want: SheetLayout{ContentX: 1, ContentWidth: 79, ScrollbarX: 0, HeaderY: 1, BodyY: 3, BodyHeight: 19},
		},
		{
			name: "too short", width: 10, height: 3, headerHeight: 2,
			want: SheetLayout{ContentX: 0, ContentWidth: 9, ScrollbarX: 9, HeaderY: 1, BodyY: 3, BodyHeight: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateSheetLayout(tt.width, tt.height, tt.headerHeight, tt.rtl))
		})
	}
}
