package evaluator

import (
	"datagets/src/utils"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch = errors.New("the lengths of the measurement and prediction arrays do not agree")
	ErrInvalidTitle   = errors.New("the title of a classifier evaluator must be printable text")
	ErrNoSamples      = errors.New("no samples to evaluate")
	ErrMissingColumn  = errors.New("column not found")
	ErrSingleClass    = errors.New("both positive and negative samples are required")
	ErrInvalidScore   = errors.New("prediction score is not a number")
)

// Evaluator 二分类模型的ROC曲线与AUC，构造后只读
type Evaluator struct {
	title         string
	positiveLabel float64
	positiveClass string

	fpr        []float64
	tpr        []float64
	thresholds []float64
	auc        float64
}

type Option func(*Evaluator)

// WithPositiveLabel 指定正类标签，默认 1
func WithPositiveLabel(label float64) Option {
	return func(e *Evaluator) { e.positiveLabel = label }
}

// WithPositiveClass 按文本指定正类(如 "spam")，仅用于 NewFromDataFrame，
// 设置后真实值列按原始文本比较
func WithPositiveClass(class string) Option {
	return func(e *Evaluator) { e.positiveClass = class }
}

// WithTitle 指定图表标题
func WithTitle(title string) Option {
	return func(e *Evaluator) { e.title = title }
}

// New 根据真实值与预测分数计算ROC曲线与AUC
func New(measurements, predictions []float64, opts ...Option) (*Evaluator, error) {
	if len(measurements) != len(predictions) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(measurements), len(predictions))
	}

	e, err := newEvaluator(opts)
	if err != nil {
		return nil, err
	}
	classes := make([]bool, len(measurements))
	for i, m := range measurements {
		classes[i] = m == e.positiveLabel
	}
	if err := e.compute(classes, predictions); err != nil {
		return nil, err
	}
	return e, nil
}

// NewFromDataFrame 从DataFrame的两列读取真实值与预测分数。
// 真实值逐个单元格判定正负类，配合 WithPositiveClass 可使用文本标签(ham/spam)。
func NewFromDataFrame(df dataframe.DataFrame, measurementCol, predictionCol string, opts ...Option) (*Evaluator, error) {
	for _, col := range []string{measurementCol, predictionCol} {
		if !utils.HasColumn(df, col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	e, err := newEvaluator(opts)
	if err != nil {
		return nil, err
	}
	labels := df.Col(measurementCol)
	classes := make([]bool, labels.Len())
	for i := range classes {
		classes[i] = e.isPositive(labels.Elem(i))
	}
	if err := e.compute(classes, df.Col(predictionCol).Float()); err != nil {
		return nil, err
	}
	return e, nil
}

func newEvaluator(opts []Option) (*Evaluator, error) {
	e := &Evaluator{positiveLabel: 1}
	for _, opt := range opts {
		opt(e)
	}
	if !validTitle(e.title) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTitle, e.title)
	}
	return e, nil
}

// isPositive 设置了 positiveClass 时按文本比较，否则按数值与 positiveLabel 比较
func (e *Evaluator) isPositive(elem series.Element) bool {
	if elem.IsNA() {
		return false
	}
	if e.positiveClass != "" {
		return elem.String() == e.positiveClass
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(elem.String()), 64)
	return err == nil && f == e.positiveLabel
}

func (e *Evaluator) compute(classes []bool, predictions []float64) error {
	if len(classes) == 0 {
		return ErrNoSamples
	}
	var nPos int
	for _, c := range classes {
		if c {
			nPos++
		}
	}
	if nPos == 0 || nPos == len(classes) {
		return fmt.Errorf("%w: %d positive of %d", ErrSingleClass, nPos, len(classes))
	}

	for i, p := range predictions {
		if math.IsNaN(p) {
			return fmt.Errorf("%w: row %d", ErrInvalidScore, i)
		}
	}

	// stat.ROC 要求分数升序，类别随之排序
	scores := make([]float64, len(predictions))
	copy(scores, predictions)
	sorted := make([]bool, len(classes))
	copy(sorted, classes)
	stat.SortWeightedLabeled(scores, sorted, nil)

	tpr, fpr, thresh := stat.ROC(nil, scores, sorted, nil)

	// 统一为阈值递减、fpr/tpr 非递减
	if len(thresh) > 1 && thresh[0] < thresh[len(thresh)-1] {
		floats.Reverse(tpr)
		floats.Reverse(fpr)
		floats.Reverse(thresh)
	}

	e.fpr, e.tpr, e.thresholds = fpr, tpr, thresh
	e.auc = integrate.Trapezoidal(fpr, tpr)
	return nil
}

func validTitle(title string) bool {
	if !utf8.ValidString(title) {
		return false
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (e *Evaluator) Title() string          { return e.title }
func (e *Evaluator) PositiveLabel() float64 { return e.positiveLabel }
func (e *Evaluator) PositiveClass() string  { return e.positiveClass }
func (e *Evaluator) AUC() float64           { return e.auc }

// FPR 各阈值下的假阳性率
func (e *Evaluator) FPR() []float64 { return clone(e.fpr) }

// TPR 各阈值下的真阳性率
func (e *Evaluator) TPR() []float64 { return clone(e.tpr) }

// Thresholds 递减的分类阈值
func (e *Evaluator) Thresholds() []float64 { return clone(e.thresholds) }

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
