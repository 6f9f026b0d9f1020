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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/keymantra/internal/app"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/usecase/bundle"
)

const (
	importFormatKey = "bundle.import.format"
	importNameKey   = "bundle.import.name"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "从 YAML / Excel / CSV 文件导入课程",
	Long:  "导入课程文件。YAML 与 Excel 可包含多个课程 (Excel 每个工作表一个课程)，CSV 仅包含题目，课程名默认取文件名。",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		if err := runMigrate(ctx, cfg, false); err != nil {
			return err
		}

		tools, cleanup, err := app.InitializeTools(cfg)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		formatFlag := viper.GetString(importFormatKey)
		courseName := viper.GetString(importNameKey)
		if courseName != "" && len(args) > 1 {
			return fmt.Errorf("--name 只能在导入单个文件时使用")
		}

		// Decode everything first so a bad file aborts before any write.
		docs := make([]*bundle.Document, 0, len(args))
		for _, path := range args {
			doc, err := readBundle(path, formatFlag, courseName)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}

		service := bundle.NewService(tools.Courses, bundle.WithProgressReporter(newCLIProgress(cmd.ErrOrStderr())))
		var total bundle.Stats
		for i, doc := range docs {
			stats, err := service.Import(ctx, doc)
			total.Courses += stats.Courses
			total.Questions += stats.Questions
			if err != nil {
				return fmt.Errorf("导入 %s 失败: %w", args[i], err)
			}
		}

		cmd.Printf("导入完成: %d 个课程, %d 道题目\n", total.Courses, total.Questions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("format", "f", "", "文件格式 yaml|xlsx|csv (默认按扩展名判断)")
	importCmd.Flags().String("name", "", "CSV 导入时使用的课程名")

	bindFlagToViper(importFormatKey, importCmd.Flags().Lookup("format"))
	bindFlagToViper(importNameKey, importCmd.Flags().Lookup("name"))
}

func readBundle(path, formatFlag, courseName string) (*bundle.Document, error) {
	format, err := resolveFormat(path, formatFlag)
	if err != nil {
		return nil, err
	}
	if courseName == "" {
		courseName = bundle.CourseNameFromPath(path)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	doc, err := bundle.Decode(file, format, courseName)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return doc, nil
}

func resolveFormat(path, formatFlag string) (bundle.Format, error) {
	if formatFlag != "" {
		return bundle.ParseFormat(formatFlag)
	}
	return bundle.DetectFormat(path)
}
