package main

import (
	"datagets/src/cleaner"
	"datagets/src/config"
	"datagets/src/datasource/file"
	"datagets/src/evaluator"
	"datagets/src/storage"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	jsonFolder := "./config"
	jsonFile := "config.json"
	cfg, err := config.LoadConfig(jsonFolder, jsonFile)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()
	if err := logger.CheckRotate(cfg); err != nil {
		logger.Warning("日志轮转失败: " + err.Error())
	}

	setupSignalHandler(logger)

	command := "clean"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "clean":
		err = runCleaner(cfg, logger, os.Stdin, os.Stdout)
	case "roc":
		err = runEvaluator(cfg, logger, os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q (want clean or roc)", command)
	}

	if err != nil {
		logger.Error(err.Error())
		logger.Close()
		log.Fatal(err)
	}
}

// runCleaner 读取输入表，交互式清洗后保存
func runCleaner(cfg *config.Config, logger *storage.Logger, in io.Reader, out io.Writer) error {
	mode, err := cleaner.ParseConfirmation(cfg.Cleaner.Confirmation)
	if err != nil {
		return err
	}

	df, err := file.ReadTable(cfg.Cleaner.TableSource)
	if err != nil {
		return fmt.Errorf("读取输入表失败: %w", err)
	}
	logger.Info(fmt.Sprintf("读取 %s: %d 行 %d 列", cfg.Cleaner.Input, df.Nrow(), df.Ncol()))

	c := cleaner.New(in, out, mode, cleaner.WithLogger(logger))
	table, report, err := c.CleanManual(df)
	if err != nil {
		return err
	}

	if cfg.Cleaner.Manual {
		fmt.Fprintln(out, "Selected columns:")
		for i, name := range report.NewNames {
			fmt.Fprintf(out, "  %s --> %s (%s)\n", report.ChosenOriginalNames[i], name, report.NewTypeByName[name])
		}
	}

	if cfg.Cleaner.Output == "" {
		fmt.Fprintln(out, table)
		return nil
	}
	if err := file.SaveTable(table, cfg.Cleaner.Output); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("清洗结果已保存到: %s", cfg.Cleaner.Output))
	fmt.Fprintf(out, "Saved %d columns to %s\n", table.Ncol(), cfg.Cleaner.Output)
	return nil
}

// runEvaluator 计算ROC/AUC并输出图表
func runEvaluator(cfg *config.Config, logger *storage.Logger, out io.Writer) error {
	ec := cfg.Evaluator

	df, err := file.ReadTable(ec.TableSource)
	if err != nil {
		return fmt.Errorf("读取评估数据失败: %w", err)
	}

	e, err := evaluator.NewFromDataFrame(df, ec.MeasurementColumn, ec.PredictionColumn,
		evaluator.WithPositiveLabel(*ec.PositiveLabel),
		evaluator.WithPositiveClass(ec.PositiveClass),
		evaluator.WithTitle(ec.Title))
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("AUC = %v (%d 个阈值)", e.AUC(), len(e.Thresholds())))
	fmt.Fprintf(out, "AUC: %v\n", e.AUC())

	if err := e.Plot(ec.PlotFile); err != nil {
		return err
	}
	fmt.Fprintf(out, "ROC curve saved to %s\n", ec.PlotFile)
	return nil
}

// setupSignalHandler SIGINT/SIGTERM 关闭日志退出，SIGHUP 重新打开日志文件
func setupSignalHandler(logger *storage.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)

	go func() {
		for sig := range sigChan {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info("Received signal: " + sig.String() + ", shutting down...")
				_ = logger.Close()
				os.Exit(130)

			case syscall.SIGHUP:
				if err := logger.Reopen(); err != nil {
					log.Printf("Failed to reopen log: %v", err)
				}
			}
		}
	}()
}
