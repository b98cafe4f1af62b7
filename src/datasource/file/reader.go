// reader.go
package file

import (
	"datagets/src/config"
	"datagets/src/utils"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrUnknownEncoding   = errors.New("unknown encoding")
)

// ReadTable 按扩展名读取 csv / xlsx 文件为 DataFrame
func ReadTable(src config.TableSource) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(src.Input)) {
	case ".csv":
		return ReadCSV(src.Input, src.Encoding)
	case ".xlsx":
		return ReadXLSX(src.Input, src.SheetName, src.HeaderRow)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src.Input)
	}
}

// ReadCSV 读取csv文件，列类型由gota自动推断
func ReadCSV(filePath, encodingName string) (dataframe.DataFrame, error) {
	enc, err := decoderFor(encodingName)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("打开csv文件失败: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}

	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return df, fmt.Errorf("解析csv文件失败: %w", df.Err)
	}
	return df, nil
}

// decoderFor 返回对应的编码，utf-8 返回 nil
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "gbk":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
}

// ReadXLSX 读取xlsx工作表，headerRow 为标题行下标
func ReadXLSX(filePath, sheetName string, headerRow int) (dataframe.DataFrame, error) {
	// 1. 使用tealeg/xlsx打开Excel文件
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx open file false: %w", err)
	}

	// 2. 获取工作表
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: excel文件中没有工作表", ErrSheetNotFound)
	}
	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		var ok bool
		if sheet, ok = xlFile.Sheet[sheetName]; !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrSheetNotFound, sheetName)
		}
	}

	// 3. 转换为Gota DataFrame
	records := convertSheetToRecords(sheet, headerRow)
	if len(records) == 0 {
		return dataframe.DataFrame{}, nil
	}

	df := dataframe.LoadRecords(records)
	if df.Err != nil {
		return df, fmt.Errorf("转换为dataframe失败: %w", df.Err)
	}
	return df, nil
}

// convertSheetToRecords 将xlsx.Sheet转换为记录，第一条为标题行
func convertSheetToRecords(sheet *xlsx.Sheet, headerRow int) [][]string {
	if headerRow < 0 || len(sheet.Rows) <= headerRow {
		return nil
	}

	// 获取列名
	var headers []string
	for _, cell := range sheet.Rows[headerRow].Cells {
		headers = append(headers, cell.Value)
	}
	// 去掉末尾的空标题
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	if len(headers) == 0 {
		return nil
	}

	records := make([][]string, 0, len(sheet.Rows)-headerRow)
	records = append(records, headers)

	// 填充数据(标题行之后)，短行补空
	for _, row := range sheet.Rows[headerRow+1:] {
		if row == nil {
			continue
		}
		record := make([]string, len(headers))
		empty := true
		for i, cell := range row.Cells {
			if i < len(headers) { // 确保不超出列数范围
				record[i] = cell.Value
				if cell.Value != "" {
					empty = false
				}
			}
		}
		if empty {
			continue
		}
		records = append(records, record)
	}

	return records
}

// SaveTable 按扩展名保存 DataFrame 为 csv / xlsx
func SaveTable(df dataframe.DataFrame, filePath string) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		f, err := os.Create(filePath)
		if err != nil {
			return fmt.Errorf("创建csv文件失败: %w", err)
		}
		if err := df.WriteCSV(f); err != nil {
			f.Close()
			return fmt.Errorf("写入csv文件失败: %w", err)
		}
		return f.Close()
	case ".xlsx":
		return utils.SaveToExcel(df, filePath)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
}
