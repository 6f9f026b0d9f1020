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

	"github.com/spf13/cobra"

	"github.com/eslsoft/keymantra/internal/app"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/usecase/bundle"
)

// demoBundle is the sample course created by the seed command.
var demoBundle = &bundle.Document{
	Courses: []bundle.Course{
		{
			Name:        "Everyday English",
			Description: "Short sentences for a first dictation session",
			Questions: []bundle.Question{
				{Title: "介绍自己的名字", Answer: "My name is Apple."},
				{Title: "早上问好", Answer: "Good morning!"},
				{Title: "询问对方近况", Answer: "How are you?"},
				{Title: "表示感谢", Answer: "Thank you very much."},
				{Title: "道别", Answer: "See you tomorrow."},
			},
		},
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入示例课程",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		if err := runMigrate(cmd.Context(), cfg, false); err != nil {
			return err
		}

		tools, cleanup, err := app.InitializeTools(cfg)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		stats, err := bundle.NewService(tools.Courses).Import(cmd.Context(), demoBundle)
		if err != nil {
			return fmt.Errorf("写入示例数据失败: %w", err)
		}
		cmd.Printf("已写入 %d 个课程, %d 道题目\n", stats.Courses, stats.Questions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
