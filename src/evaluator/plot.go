package evaluator

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	curveColor    = color.RGBA{R: 255, G: 215, A: 255} // gold
	baselineColor = color.RGBA{B: 128, A: 255}         // navy
)

// Plot 绘制ROC曲线并保存到 filename，格式由扩展名决定(png/svg/pdf)
func (e *Evaluator) Plot(filename string) error {
	p, err := e.rocPlot()
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("保存ROC图失败: %w", err)
	}
	return nil
}

func (e *Evaluator) rocPlot() (*plot.Plot, error) {
	p := plot.New()

	// 坐标轴范围与标签
	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"

	if e.title != "" {
		p.Title.Text = fmt.Sprintf("Receiver operating characteristic:  %s", e.title)
	} else {
		p.Title.Text = "Receiver operating characteristic"
	}

	pts := make(plotter.XYs, len(e.fpr))
	for i := range e.fpr {
		pts[i].X = e.fpr[i]
		pts[i].Y = e.tpr[i]
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("ROC曲线数据无效: %w", err)
	}
	curve.Color = curveColor
	curve.Width = vg.Points(2)

	// 随机分类器基准线
	baseline, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, err
	}
	baseline.Color = baselineColor
	baseline.Width = vg.Points(2)
	baseline.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(curve, baseline)
	p.Legend.Add(fmt.Sprintf("ROC curve (area = %v)", e.auc), curve)
	// 图例放在右下角
	p.Legend.Left = false
	p.Legend.Top = false

	return p, nil
}
