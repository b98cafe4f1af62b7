package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// 默认值
const (
	DefaultLogName       = "datagets.log"
	DefaultLogMaxSize    = "10 * 1024 * 1024"
	DefaultConfirmation  = "stepwise"
	DefaultPlotFile      = "roc.png"
	DefaultPositiveLabel = 1.0
)

// TableSource 描述一个输入表格文件
type TableSource struct {
	Input     string `json:"input"`      // 输入文件路径(.csv 或 .xlsx)
	SheetName string `json:"sheet_name"` // xlsx 工作表名称，为空时取第一个工作表
	HeaderRow int    `json:"header_row"` // xlsx 标题行(从0开始)
	Encoding  string `json:"encoding"`   // csv 文件编码，支持 gbk / gb18030
}

// Config 结构体定义了应用程序的配置结构
type Config struct {
	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`

	Cleaner struct {
		TableSource
		Output       string `json:"output"`       // 清洗结果保存路径
		Confirmation string `json:"confirmation"` // none / stepwise / end
		Manual       bool   `json:"manual"`       // 是否输出列选择报告
	} `json:"cleaner"`

	Evaluator struct {
		TableSource
		MeasurementColumn string   `json:"measurement_column"`
		PredictionColumn  string   `json:"prediction_column"`
		PositiveLabel     *float64 `json:"positive_label"`
		PositiveClass     string   `json:"positive_class"` // 文本正类，设置后优先于 positive_label
		Title             string   `json:"title"`
		PlotFile          string   `json:"plot_file"`
	} `json:"evaluator"`
}

var (
	once     sync.Once
	instance *Config
)

// LoadConfig 只加载一次配置文件，后续调用返回同一实例
func LoadConfig(jsonFolder, jsonFile string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = loadConfig(jsonFolder, jsonFile)
	})
	return instance, err
}

func loadConfig(jsonFolder, jsonFile string) (*Config, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)

	configData, err := readFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		// 没有配置文件时使用默认配置
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	return parseConfig(configData)
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析Config失败: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogName == "" {
		c.LogName = DefaultLogName
	}
	if c.LogMaxSize == "" {
		c.LogMaxSize = DefaultLogMaxSize
	}
	if c.Cleaner.Confirmation == "" {
		c.Cleaner.Confirmation = DefaultConfirmation
	}
	if c.Evaluator.PlotFile == "" {
		c.Evaluator.PlotFile = DefaultPlotFile
	}
	if c.Evaluator.PositiveLabel == nil {
		label := DefaultPositiveLabel
		c.Evaluator.PositiveLabel = &label
	}
}
