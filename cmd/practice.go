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
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/eslsoft/keymantra/internal/app"
	"github.com/eslsoft/keymantra/internal/dictation"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/recitation"
	"github.com/eslsoft/keymantra/internal/usecase"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <course-id>",
	Short: "在终端中练习课程听写",
	Long: `逐题练习课程。每行输入一次完整答案并回车提交；
:n 下一题, :p 上一题, :q 退出。
使用 --recite 进入背诵模式：回车显示答案，再次回车进入下一题。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || courseID <= 0 {
			return fmt.Errorf("无效的课程 ID: %s", args[0])
		}
		recite, _ := cmd.Flags().GetBool("recite")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		tools, cleanup, err := app.InitializeTools(cfg)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		fetch := func(ctx context.Context) ([]dictation.Question, error) {
			rows, err := tools.Courses.ListQuestions(ctx, courseID)
			if err != nil {
				return nil, err
			}
			return usecase.DictationQuestions(rows), nil
		}

		if recite {
			return runRecitation(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), fetch, recitation.DefaultHold)
		}
		return runDictation(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), fetch,
			dictation.WithAdvanceDelay(cfg.Dictation.AdvanceDelay))
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)
	practiceCmd.Flags().Bool("recite", false, "背诵模式")
}

// lockedWriter serializes output from the input loop and the auto-advance timer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func runDictation(ctx context.Context, in io.Reader, out io.Writer, fetch dictation.Fetcher, opts ...dictation.Option) error {
	w := &lockedWriter{w: out}
	opts = append(opts, dictation.WithListener(func(v dictation.View) {
		fmt.Fprint(w, renderView(v))
	}))
	ctrl := dictation.NewController(opts...)
	defer ctrl.Close()

	view, err := ctrl.Load(ctx, fetch)
	if err != nil {
		return fmt.Errorf("加载题目失败: %w", err)
	}
	fmt.Fprint(w, renderView(view))
	if view.Status == dictation.StatusEmpty {
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case ":q":
			return nil
		case ":n":
			view = ctrl.Next()
		case ":p":
			view = ctrl.Previous()
		default:
			ctrl.Input(line, utf8.RuneCountInString(line))
			view = ctrl.Submit(false)
		}
		fmt.Fprint(w, renderView(view))
	}
	return scanner.Err()
}

func renderView(v dictation.View) string {
	var b strings.Builder
	switch v.Status {
	case dictation.StatusLoading:
		b.WriteString("正在加载...\n")
	case dictation.StatusEmpty:
		b.WriteString("该课程还没有题目\n")
	case dictation.StatusComplete:
		b.WriteString("全部完成! 输入 :p 返回上一题, :q 退出\n")
	case dictation.StatusUnplayable:
		fmt.Fprintf(&b, "[%d/%d] %s\n该题没有答案, 输入 :n 跳过\n", v.Index+1, v.Total, v.Title)
	case dictation.StatusActive:
		fmt.Fprintf(&b, "[%d/%d] %s\n", v.Index+1, v.Total, v.Title)
		if v.State.Phase != dictation.Submitted {
			b.WriteString(renderPlaceholders(v.Slots))
			b.WriteString("\n")
			break
		}
		b.WriteString(renderVerdicts(v.Slots))
		b.WriteString("\n")
		if len(v.Extra) > 0 {
			fmt.Fprintf(&b, "多余的词: %s\n", strings.Join(v.Extra, " "))
		}
		if v.State.AllCorrect {
			b.WriteString("全部正确!\n")
		} else {
			b.WriteString("有错误, 修改后重新提交\n")
		}
	}
	return b.String()
}

func renderPlaceholders(slots []dictation.SlotView) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strings.Repeat("_", s.Length)
	}
	return strings.Join(parts, " ")
}

func renderVerdicts(slots []dictation.SlotView) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		typed := s.Typed
		if typed == "" {
			typed = strings.Repeat("_", s.Length)
		}
		mark := "✗"
		if s.Verdict != nil && *s.Verdict == dictation.Correct {
			mark = "✓"
		}
		parts[i] = typed + mark
	}
	return strings.Join(parts, " ")
}

func runRecitation(ctx context.Context, in io.Reader, out io.Writer, fetch dictation.Fetcher, hold time.Duration) error {
	qs, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("加载题目失败: %w", err)
	}
	if len(qs) == 0 {
		fmt.Fprintln(out, "该课程还没有题目")
		return nil
	}
	dictation.SortQuestions(qs)

	scanner := bufio.NewScanner(in)
	next := func() bool {
		return scanner.Scan() && strings.TrimSpace(scanner.Text()) != ":q"
	}
	for i, q := range qs {
		fmt.Fprintf(out, "[%d/%d] %s\n按回车显示答案\n", i+1, len(qs), q.Title)
		if !next() {
			return scanner.Err()
		}

		revealed := make(chan struct{}, 1)
		card := recitation.NewReveal(hold, nil, func() { revealed <- struct{}{} })
		card.Press()
		select {
		case <-revealed:
		case <-ctx.Done():
			card.Reset()
			return ctx.Err()
		}
		card.Release()

		if q.Answer != nil && strings.TrimSpace(*q.Answer) != "" {
			fmt.Fprintf(out, "答案: %s\n", *q.Answer)
		} else {
			fmt.Fprintln(out, "(该题没有答案)")
		}
		if i < len(qs)-1 && !next() {
			return scanner.Err()
		}
	}
	fmt.Fprintln(out, "全部完成!")
	return nil
}
