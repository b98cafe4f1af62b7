package cleaner

import (
	"datagets/src/storage"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Confirmation 用户确认方式
type Confirmation int

const (
	ConfirmNone     Confirmation = iota // 不确认
	ConfirmStepwise                     // 每列确认
	ConfirmEnd                          // 全部完成后统一确认
)

// ParseConfirmation 解析确认方式，空字符串等同于 none
func ParseConfirmation(s string) (Confirmation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ConfirmNone, nil
	case "stepwise":
		return ConfirmStepwise, nil
	case "end":
		return ConfirmEnd, nil
	default:
		return ConfirmNone, fmt.Errorf("%w: %q", ErrUnknownConfirmation, s)
	}
}

func (c Confirmation) String() string {
	switch c {
	case ConfirmNone:
		return "none"
	case ConfirmStepwise:
		return "stepwise"
	case ConfirmEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Decision 单列的处理结果，只记录在退出前访问过的列
type Decision struct {
	Index   int // 原始列下标(从0开始)
	OldName string
	OldType series.Type
	Keep    bool
	NewName string
	NewType series.Type
	RawType string // 用户输入的类型文本，回车时为原类型

	values series.Series
}

// Report 列选择报告
type Report struct {
	ChosenOriginalNames []string
	NewNames            []string
	NewTypeByName       map[string]series.Type
}

// Cleaner 交互式逐列清洗表格
type Cleaner struct {
	prompt *prompter
	mode   Confirmation
	logger *storage.Logger
}

type Option func(*Cleaner)

// WithLogger 记录每列的处理结果
func WithLogger(logger *storage.Logger) Option {
	return func(c *Cleaner) { c.logger = logger }
}

// New 创建清洗器，从 in 读取回答，提示写入 out
func New(in io.Reader, out io.Writer, mode Confirmation, opts ...Option) *Cleaner {
	c := &Cleaner{
		prompt: newPrompter(in, out),
		mode:   mode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean 逐列询问保留、重命名与类型转换，返回新表
func (c *Cleaner) Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	table, _, err := c.CleanManual(df)
	return table, err
}

// CleanManual 同 Clean，并返回列选择报告
func (c *Cleaner) CleanManual(df dataframe.DataFrame) (dataframe.DataFrame, Report, error) {
	decisions, err := c.walk(df)
	if err != nil {
		return dataframe.DataFrame{}, Report{}, err
	}
	table, report := c.assemble(decisions)
	return table, report, nil
}

func (c *Cleaner) walk(df dataframe.DataFrame) ([]Decision, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, df.Err)
	}

	names := df.Names()
	types := df.Types()
	n := len(names)
	decisions := make([]Decision, 0, n)

	c.logger.Info(fmt.Sprintf("开始清洗: %d 列, 确认方式 %s", n, c.mode))

walk:
	for j := 0; j < n; j++ {
		if j != 0 {
			c.prompt.println(strings.Repeat("-", 80))
		}

		// 列信息
		c.prompt.printf("Column %d of %d\n", j+1, n)
		c.prompt.printf("Column name:  %s\n", names[j])
		c.prompt.printf("Column type:  %s\n", types[j])

		keep, err := c.prompt.choose("Keep column? [Y/n/q]  ", true)
		if err != nil {
			return nil, err
		}
		c.prompt.println()

		switch keep {
		case answerNo:
			decisions = append(decisions, Decision{Index: j, OldName: names[j], OldType: types[j]})
			c.prompt.println("Discarding column.")
			c.logger.Info(fmt.Sprintf("丢弃列 %s", names[j]))

		case answerQuit:
			decisions = append(decisions, Decision{Index: j, OldName: names[j], OldType: types[j]})
			c.prompt.println("Quitting cleaning process.")
			c.prompt.println()
			c.logger.Info(fmt.Sprintf("在第 %d 列退出，剩余 %d 列全部丢弃", j+1, n-j))
			break walk

		default:
			d, err := c.configure(df.Col(names[j]), j)
			if err != nil {
				return nil, err
			}
			decisions = append(decisions, d)
			c.logger.Info(fmt.Sprintf("保留列 %s(%s) -> %s(%s)", d.OldName, d.OldType, d.NewName, d.NewType))
		}
	}

	if c.mode == ConfirmEnd {
		c.printSummary(names, types, decisions)

		ok, err := c.prompt.confirm()
		if err != nil {
			return nil, err
		}
		if !ok {
			c.logger.Warning("用户拒绝最终确认，清洗结果作废")
			return nil, ErrAborted
		}
	}

	return decisions, nil
}

// configure 询问新列名与新类型，直到转换成功且(按需)确认
func (c *Cleaner) configure(col series.Series, index int) (Decision, error) {
	oldType := col.Type()

	for {
		newName, err := c.prompt.readLine("New column name (press enter to keep name):  ")
		if err != nil {
			return Decision{}, err
		}
		if newName == "" {
			newName = col.Name
		}

		var (
			values  series.Series
			newType series.Type
		)
		rawType, err := c.prompt.retry("New column type (press enter to keep type):  ", func(s string) string {
			spec := s
			if spec == "" {
				spec = string(oldType)
			}
			typ, err := ParseType(spec)
			if err != nil {
				return fmt.Sprintf("Invalid type:  %s", spec)
			}
			out, err := Cast(col, typ, newName)
			if err != nil {
				return fmt.Sprintf("Column cannot be recast as selected type:  %s", spec)
			}
			values, newType = out, typ
			return ""
		})
		if err != nil {
			return Decision{}, err
		}
		if rawType == "" {
			rawType = string(oldType)
		}

		if c.mode == ConfirmStepwise {
			c.prompt.println()
			c.prompt.printf("Column name:  %s --> %s\n", col.Name, newName)
			c.prompt.printf("Column type:  %s --> %s\n", oldType, newType)

			ok, err := c.prompt.confirm()
			if err != nil {
				return Decision{}, err
			}
			if !ok {
				continue
			}
		}

		return Decision{
			Index:   index,
			OldName: col.Name,
			OldType: oldType,
			Keep:    true,
			NewName: newName,
			NewType: newType,
			RawType: rawType,
			values:  values,
		}, nil
	}
}

// printSummary 按原始顺序打印所有列的处理结果，未访问的列视为丢弃
func (c *Cleaner) printSummary(names []string, types []series.Type, decisions []Decision) {
	kept := make(map[int]Decision, len(decisions))
	for _, d := range decisions {
		if d.Keep {
			kept[d.Index] = d
		}
	}

	c.prompt.println(strings.Repeat("-", 80))
	for j := range names {
		if d, ok := kept[j]; ok {
			c.prompt.printf("Column %d:  (%s, %s) --> (%s, %s)\n", j+1, names[j], types[j], d.NewName, d.NewType)
		} else {
			c.prompt.printf("Column %d:  Dropped\n", j+1)
		}
	}
	c.prompt.println()
}

// assemble 按保留顺序组装新表；新列名重复时后者覆盖前者，位置保持第一次出现的位置
func (c *Cleaner) assemble(decisions []Decision) (dataframe.DataFrame, Report) {
	report := Report{NewTypeByName: make(map[string]series.Type)}
	position := make(map[string]int)
	var columns []series.Series

	for _, d := range decisions {
		if !d.Keep {
			continue
		}
		if i, ok := position[d.NewName]; ok {
			c.logger.Warning(fmt.Sprintf("列名冲突: %s 覆盖了 %s 的结果", d.OldName, report.ChosenOriginalNames[i]))
			columns[i] = d.values
			report.ChosenOriginalNames[i] = d.OldName
		} else {
			position[d.NewName] = len(columns)
			columns = append(columns, d.values)
			report.ChosenOriginalNames = append(report.ChosenOriginalNames, d.OldName)
			report.NewNames = append(report.NewNames, d.NewName)
		}
		report.NewTypeByName[d.NewName] = d.NewType
	}

	if len(columns) == 0 {
		return dataframe.DataFrame{}, report
	}
	return dataframe.New(columns...), report
}
