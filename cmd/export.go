/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/keymantra/internal/app"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/usecase/bundle"
)

const (
	exportOutputKey = "bundle.export.output"
	exportFormatKey = "bundle.export.format"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出课程为 YAML / Excel / CSV 文件",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		courseIDs, _ := cmd.Flags().GetInt64Slice("course")
		outputPath := viper.GetString(exportOutputKey)
		formatFlag := viper.GetString(exportFormatKey)

		var format bundle.Format
		switch {
		case formatFlag != "":
			format, err = bundle.ParseFormat(formatFlag)
		case outputPath != "" && outputPath != "-":
			format, err = bundle.DetectFormat(outputPath)
		default:
			format = bundle.FormatYAML
		}
		if err != nil {
			return err
		}
		if outputPath == "" {
			outputPath = defaultExportFilename(format)
		}
		if format == bundle.FormatCSV && len(courseIDs) != 1 {
			return fmt.Errorf("CSV 只能导出单个课程，请通过 --course 指定")
		}

		tools, cleanup, err := app.InitializeTools(cfg)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		service := bundle.NewService(tools.Courses, bundle.WithProgressReporter(newCLIProgress(cmd.ErrOrStderr())))
		doc, err := service.Export(ctx, courseIDs)
		if err != nil {
			return fmt.Errorf("导出课程失败: %w", err)
		}

		var writer io.Writer = cmd.OutOrStdout()
		if outputPath != "-" {
			if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
				return fmt.Errorf("创建输出目录失败: %w", err)
			}
			file, openErr := os.Create(outputPath)
			if openErr != nil {
				return fmt.Errorf("创建输出文件失败: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}

		if err := bundle.Encode(writer, format, doc); err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}

		if outputPath == "-" {
			cmd.PrintErrln("导出完成: 输出到标准输出")
		} else {
			cmd.Printf("导出完成: %s (%d 个课程)\n", outputPath, len(doc.Courses))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "输出文件路径，使用 - 表示标准输出")
	exportCmd.Flags().StringP("format", "f", "", "文件格式 yaml|xlsx|csv (默认按扩展名判断)")
	exportCmd.Flags().Int64Slice("course", nil, "仅导出指定课程 ID，逗号分隔或重复指定")

	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportFormatKey, exportCmd.Flags().Lookup("format"))
}

func defaultExportFilename(format bundle.Format) string {
	ts := time.Now().UTC().Format("20060102-150405")
	return fmt.Sprintf("keymantra-courses-%s.%s", ts, format)
}
