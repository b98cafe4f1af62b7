package utils

import (
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

func TestContains(t *testing.T) {
	if !Contains([]string{"y", "yes"}, "yes") {
		t.Error("expected yes to be found")
	}
	if Contains([]string{"y", "yes"}, "YES") {
		t.Error("Contains must be case-sensitive")
	}
	if Contains([]int{}, 0) {
		t.Error("empty slice contains nothing")
	}
}

func TestHasColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]int{1, 2}, series.Int, "integers"),
	)
	if !HasColumn(df, "integers") {
		t.Error("expected integers column")
	}
	if HasColumn(df, "letters") {
		t.Error("unexpected letters column")
	}
}

func TestSaveToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	df := dataframe.New(
		series.New([]int{0, 1, 2}, series.Int, "integers"),
		series.New([]string{"A", "NaN", "C"}, series.String, "letters"),
	)

	if err := SaveToExcel(df, path); err != nil {
		t.Fatalf("SaveToExcel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0][0] != "integers" || rows[0][1] != "letters" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[3][0] != "2" || rows[3][1] != "C" {
		t.Errorf("last row = %v", rows[3])
	}
	// 缺失值不写入单元格
	if v, _ := f.GetCellValue("Sheet1", "B3"); v != "" {
		t.Errorf("B3 = %q, want empty", v)
	}
}
