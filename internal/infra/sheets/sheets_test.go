package sheets

import "testing"

func TestRowIndexFromRange(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "basic schema row", in: "Sheet1!A5:D5", want: 4},
		{name: "extended schema row", in: "Ledger!A12:F12", want: 11},
		{name: "first data row", in: "Ledger!A1:D1", want: 0},
		{name: "large row number", in: "Ledger!A10432:F10432", want: 10431},
		{name: "sheet name with digits", in: "Ledger2024!A7:D7", want: 6},
		{name: "no row number", in: "Ledger!A:D", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rowIndexFromRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("rowIndexFromRange(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("rowIndexFromRange(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		width int64
		want  string
	}{
		{4, "D"},
		{6, "F"},
		{1, "A"},
		{26, "Z"},
		{0, "Z"},
		{40, "Z"},
	}

	for _, tt := range tests {
		if got := columnLetter(tt.width); got != tt.want {
			t.Errorf("columnLetter(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestAppendRange(t *testing.T) {
	s := NewWithService(nil, "spreadsheet", "Ledger", 0, 4)
	if got := s.appendRange(); got != "Ledger!A:D" {
		t.Errorf("appendRange() = %q, want %q", got, "Ledger!A:D")
	}

	s = NewWithService(nil, "spreadsheet", "Catatan", 0, 6)
	if got := s.appendRange(); got != "Catatan!A:F" {
		t.Errorf("appendRange() = %q, want %q", got, "Catatan!A:F")
	}
}
