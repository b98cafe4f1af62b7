package cleaner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
)

// typeAliases 用户可输入的类型名称到gota类型的映射
var typeAliases = map[string]series.Type{
	"string":  series.String,
	"str":     series.String,
	"object":  series.String,
	"text":    series.String,
	"int":     series.Int,
	"int64":   series.Int,
	"integer": series.Int,
	"float":   series.Float,
	"float64": series.Float,
	"double":  series.Float,
	"number":  series.Float,
	"bool":    series.Bool,
	"boolean": series.Bool,
}

// ParseType 将类型名称解析为 series.Type，大小写不敏感
func ParseType(spec string) (series.Type, error) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(spec))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, spec)
	}
	return t, nil
}

// Cast 将列转换为 typ 类型并命名为 name。
// 缺失值保持缺失；非缺失值无法表示为目标类型时返回 ErrIncompatibleData。
func Cast(s series.Series, typ series.Type, name string) (series.Series, error) {
	if _, err := ParseType(string(typ)); err != nil {
		return series.Series{}, err
	}

	records := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		elem := s.Elem(i)
		if elem.IsNA() {
			records[i] = "NaN"
			continue
		}
		rec, err := castElement(elem, typ)
		if err != nil {
			return series.Series{}, fmt.Errorf("%w: row %d value %q to %s", ErrIncompatibleData, i, elem.String(), typ)
		}
		records[i] = rec
	}

	out := series.New(records, typ, name)
	if out.Err != nil {
		return series.Series{}, fmt.Errorf("%w: %v", ErrIncompatibleData, out.Err)
	}
	return out, nil
}

// castElement 返回元素在目标类型下的文本表示
func castElement(elem series.Element, typ series.Type) (string, error) {
	switch typ {
	case series.String:
		if elem.Type() == series.Float {
			return formatFloat(elem.Float()), nil
		}
		return elem.String(), nil
	case series.Int:
		if elem.Type() == series.Float {
			// 超出 int 范围的浮点数不能截断
			if f := elem.Float(); f >= math.MaxInt64 || f < math.MinInt64 {
				return "", fmt.Errorf("%v out of int range", f)
			}
		}
		v, err := elem.Int()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(v), nil
	case series.Float:
		f := elem.Float()
		if math.IsNaN(f) {
			return "", fmt.Errorf("not a number")
		}
		return formatFloat(f), nil
	case series.Bool:
		b, err := elem.Bool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	}
	return "", ErrUnknownType
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
