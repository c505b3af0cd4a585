package domain

import (
	"errors"
	"testing"
)

// textRow 以文本单元格构造一行
func textRow(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = TextCell(v)
	}
	return row
}

func TestInferFixedLayoutFull(t *testing.T) {
	sheet := &Sheet{Name: "Liquid", Rows: [][]Cell{
		textRow("Some workbook banner"),
		{},
		textRow("Scheme Name", "Launch Date", "Fund Size (Apr 2025)", "Fund Size (May 2025)",
			"Latest NAV", "7 Days", "14 Days", "21 Days", "1 Month", "3 Months", "6 Months",
			"YTD", "1 Year", "2 Years", "3 Years", "4 Years", "5 Years", "7 Years", "10 Years"),
	}}

	layout, err := InferFixedLayout(sheet)
	if err != nil {
		t.Fatalf("InferFixedLayout() error = %v", err)
	}
	if layout.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d, want 2", layout.HeaderRow)
	}
	if len(layout.Columns) != 19 {
		t.Errorf("len(Columns) = %d, want 19", len(layout.Columns))
	}
	if got := layout.Columns[FieldDays7]; got != 5 {
		t.Errorf("Columns[FieldDays7] = %d, want 5", got)
	}
	if got := layout.Columns[FieldYears10]; got != 18 {
		t.Errorf("Columns[FieldYears10] = %d, want 18", got)
	}
}

func TestInferFixedLayoutReduced(t *testing.T) {
	sheet := &Sheet{Name: "Equity", Rows: [][]Cell{
		textRow("Scheme Name", "Launch Date", "Fund Size (Apr 2025)", "Fund Size (May 2025)",
			"Latest NAV", "1 Month", "3 Months", "6 Months", "YTD", "1 Year", "2 Years",
			"3 Years", "4 Years", "5 Years", "7 Years", "10 Years"),
	}}

	layout, err := InferFixedLayout(sheet)
	if err != nil {
		t.Fatalf("InferFixedLayout() error = %v", err)
	}
	if len(layout.Columns) != 16 {
		t.Errorf("len(Columns) = %d, want 16", len(layout.Columns))
	}
	if _, ok := layout.Columns[FieldDays7]; ok {
		t.Error("reduced layout should not map FieldDays7")
	}
	if got := layout.Columns[FieldMonth1]; got != 5 {
		t.Errorf("Columns[FieldMonth1] = %d, want 5", got)
	}
}

func TestInferFixedLayoutHeaderNotFound(t *testing.T) {
	sheet := &Sheet{Name: "Disclaimer", Rows: [][]Cell{
		textRow("Legal text"),
		textRow("More legal text"),
	}}
	if _, err := InferFixedLayout(sheet); !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("error = %v, want ErrHeaderNotFound", err)
	}
}

func TestInferHeaderLayout(t *testing.T) {
	sheet := &Sheet{Name: "Hybrid", Rows: [][]Cell{
		textRow("Performance report"),
		textRow("", "Fund Name", "Launch Date", "Fund Size (Apr 2025)", "Latest NAV",
			"7 Days", "1 Month", "3 Months", "YTD", "1 Year", "10 Years", "Remarks"),
	}}

	layout, err := InferHeaderLayout(sheet)
	if err != nil {
		t.Fatalf("InferHeaderLayout() error = %v", err)
	}
	if layout.HeaderRow != 1 {
		t.Errorf("HeaderRow = %d, want 1", layout.HeaderRow)
	}

	want := map[Field]int{
		FieldSchemeName: 1,
		FieldLaunchDate: 2,
		FieldSizeApr:    3,
		FieldLatestNAV:  4,
		FieldDays7:      5,
		FieldMonth1:     6,
		FieldMonths3:    7,
		FieldYTD:        8,
		FieldYear1:      9,
		FieldYears10:    10,
	}
	for field, col := range want {
		if got := layout.Columns[field]; got != col {
			t.Errorf("Columns[%s] = %d, want %d", field, got, col)
		}
	}
	if len(layout.Columns) != len(want) {
		t.Errorf("len(Columns) = %d, want %d", len(layout.Columns), len(want))
	}
	if len(layout.Overflow) != 1 || layout.Overflow[0] != 11 {
		t.Errorf("Overflow = %v, want [11]", layout.Overflow)
	}
}

func TestInferHeaderLayoutNAVFallback(t *testing.T) {
	sheet := &Sheet{Name: "Debt", Rows: [][]Cell{
		textRow("Scheme Name", "Launch Date", "NAV"),
	}}

	layout, err := InferHeaderLayout(sheet)
	if err != nil {
		t.Fatalf("InferHeaderLayout() error = %v", err)
	}
	if got := layout.Columns[FieldLatestNAV]; got != 2 {
		t.Errorf("Columns[FieldLatestNAV] = %d, want 2", got)
	}
}

func TestHasToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		want   bool
	}{
		{"10 years", "1", false},
		{"10 years", "10", true},
		{"1 year", "1", true},
		{"ytd", "ytd", true},
		{"year to date", "ytd", false},
		{"7 days", "7", true},
	}
	for _, tt := range tests {
		if got := hasToken(tt.header, tt.token); got != tt.want {
			t.Errorf("hasToken(%q, %q) = %v, want %v", tt.header, tt.token, got, tt.want)
		}
	}
}
