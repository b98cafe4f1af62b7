package evaluator

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	measurements = []float64{0, 0, 1, 1}
	predictions  = []float64{0.1, 0.4, 0.35, 0.8}
)

func TestNew(t *testing.T) {
	e, err := New(measurements, predictions, WithPositiveLabel(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	auc := e.AUC()
	if auc <= 0 || auc >= 1 {
		t.Fatalf("auc = %v, want strictly between 0 and 1", auc)
	}
	if math.Abs(auc-0.75) > 1e-9 {
		t.Errorf("auc = %v, want 0.75", auc)
	}

	fpr, tpr, thresh := e.FPR(), e.TPR(), e.Thresholds()
	if len(fpr) != len(tpr) || len(fpr) != len(thresh) {
		t.Fatalf("lengths fpr=%d tpr=%d thresh=%d", len(fpr), len(tpr), len(thresh))
	}
	for i := 1; i < len(fpr); i++ {
		if thresh[i] > thresh[i-1] {
			t.Errorf("thresholds not decreasing at %d: %v", i, thresh)
		}
		if fpr[i] < fpr[i-1] || tpr[i] < tpr[i-1] {
			t.Errorf("rates decrease at %d: fpr=%v tpr=%v", i, fpr, tpr)
		}
	}
	last := len(fpr) - 1
	if fpr[0] != 0 || tpr[0] != 0 || fpr[last] != 1 || tpr[last] != 1 {
		t.Errorf("curve must run from (0,0) to (1,1): fpr=%v tpr=%v", fpr, tpr)
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	preds := []float64{0.9, 0.1, 0.5}
	if _, err := New([]float64{1, 0, 1}, preds); err != nil {
		t.Fatal(err)
	}
	if preds[0] != 0.9 || preds[1] != 0.1 || preds[2] != 0.5 {
		t.Errorf("predictions were reordered: %v", preds)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	e, err := New(measurements, predictions)
	if err != nil {
		t.Fatal(err)
	}
	fpr := e.FPR()
	fpr[0] = 42
	if e.FPR()[0] == 42 {
		t.Error("FPR exposes internal state")
	}
}

func TestPositiveLabel(t *testing.T) {
	// 反转正类后，AUC 互补
	e, err := New(measurements, predictions, WithPositiveLabel(0))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.AUC()-0.25) > 1e-9 {
		t.Errorf("auc = %v, want 0.25", e.AUC())
	}
	if e.PositiveLabel() != 0 {
		t.Errorf("PositiveLabel = %v", e.PositiveLabel())
	}
}

func TestPerfectClassifier(t *testing.T) {
	e, err := New([]float64{0, 0, 1, 1}, []float64{0.1, 0.2, 0.8, 0.9})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.AUC()-1) > 1e-9 {
		t.Errorf("auc = %v, want 1", e.AUC())
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New([]float64{0, 1}, []float64{0.5}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
	// 长度检查先于标题检查
	if _, err := New([]float64{0}, nil, WithTitle("bad\x00")); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
	if _, err := New(measurements, predictions, WithTitle("line\nbreak")); !errors.Is(err, ErrInvalidTitle) {
		t.Errorf("err = %v, want ErrInvalidTitle", err)
	}
	if _, err := New(measurements, predictions, WithTitle(string([]byte{0xff}))); !errors.Is(err, ErrInvalidTitle) {
		t.Errorf("err = %v, want ErrInvalidTitle", err)
	}
	if _, err := New(nil, nil); !errors.Is(err, ErrNoSamples) {
		t.Errorf("err = %v, want ErrNoSamples", err)
	}
	if _, err := New(measurements, []float64{0.1, math.NaN(), 0.35, 0.8}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("err = %v, want ErrInvalidScore", err)
	}
}

func TestNewSingleClass(t *testing.T) {
	tests := map[string][]float64{
		"all positive": {1, 1, 1},
		"all negative": {0, 0, 0},
		"no match":     {2, 3, 4},
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := New(m, []float64{0.1, 0.5, 0.9})
			if !errors.Is(err, ErrSingleClass) {
				t.Fatalf("err = %v, want ErrSingleClass", err)
			}
			if e != nil {
				t.Errorf("evaluator returned with error: %+v", e)
			}
		})
	}
}

func TestNewFromDataFrame(t *testing.T) {
	df := dataframe.New(
		series.New([]int{0, 0, 1, 1}, series.Int, "label"),
		series.New(predictions, series.Float, "score"),
	)

	e, err := NewFromDataFrame(df, "label", "score", WithTitle("逻辑回归"))
	if err != nil {
		t.Fatalf("NewFromDataFrame: %v", err)
	}
	if math.Abs(e.AUC()-0.75) > 1e-9 {
		t.Errorf("auc = %v, want 0.75", e.AUC())
	}
	if e.Title() != "逻辑回归" {
		t.Errorf("Title = %q", e.Title())
	}

	if _, err := NewFromDataFrame(df, "label", "proba"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("err = %v, want ErrMissingColumn", err)
	}
}

func TestNewFromDataFrameTextLabels(t *testing.T) {
	df := dataframe.ReadCSV(strings.NewReader("label,score\nham,0.1\nham,0.4\nspam,0.35\nspam,0.8\n"))
	if df.Err != nil {
		t.Fatal(df.Err)
	}

	e, err := NewFromDataFrame(df, "label", "score", WithPositiveClass("spam"))
	if err != nil {
		t.Fatalf("NewFromDataFrame: %v", err)
	}
	if math.Abs(e.AUC()-0.75) > 1e-9 {
		t.Errorf("auc = %v, want 0.75", e.AUC())
	}
	for i, v := range e.TPR() {
		if math.IsNaN(v) {
			t.Fatalf("tpr[%d] is NaN: %v", i, e.TPR())
		}
	}
	if e.PositiveClass() != "spam" {
		t.Errorf("PositiveClass = %q", e.PositiveClass())
	}

	// 未指定文本正类时，没有样本等于数值标签 1
	if _, err := NewFromDataFrame(df, "label", "score"); !errors.Is(err, ErrSingleClass) {
		t.Errorf("err = %v, want ErrSingleClass", err)
	}
}

func TestNewFromDataFrameFloatLabels(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{0, 0, 1, 1}, series.Float, "label"),
		series.New(predictions, series.Float, "score"),
	)
	e, err := NewFromDataFrame(df, "label", "score")
	if err != nil {
		t.Fatalf("NewFromDataFrame: %v", err)
	}
	if math.Abs(e.AUC()-0.75) > 1e-9 {
		t.Errorf("auc = %v, want 0.75", e.AUC())
	}
}

func TestPlot(t *testing.T) {
	for _, title := range []string{"", "logistic"} {
		e, err := New(measurements, predictions, WithTitle(title))
		if err != nil {
			t.Fatal(err)
		}

		p, err := e.rocPlot()
		if err != nil {
			t.Fatalf("rocPlot: %v", err)
		}
		if p.X.Min != -0.05 || p.X.Max != 1.05 || p.Y.Min != -0.05 || p.Y.Max != 1.05 {
			t.Errorf("axes = [%v,%v]x[%v,%v]", p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
		}
		want := "Receiver operating characteristic"
		if title != "" {
			want += ":  " + title
		}
		if p.Title.Text != want {
			t.Errorf("title = %q, want %q", p.Title.Text, want)
		}

		path := filepath.Join(t.TempDir(), "roc.png")
		if err := e.Plot(path); err != nil {
			t.Fatalf("Plot: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Error("empty plot file")
		}
	}
}
