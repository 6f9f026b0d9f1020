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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/keymantra/internal/app"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/infrastructure/database"
	"github.com/eslsoft/keymantra/internal/infrastructure/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 Connect HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		container, cleanup, err := app.Initialize(cfg)
		if err != nil {
			return fmt.Errorf("初始化应用失败: %w", err)
		}
		defer cleanup()
		logger := container.Logger

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := runMigrate(cmd.Context(), cfg, false); err != nil {
				return err
			}
		}

		if err := container.Scheduler.Start(); err != nil {
			return fmt.Errorf("启动定时任务失败: %w", err)
		}
		defer container.Scheduler.Stop()
		defer container.Dictation.CloseAll()

		errCh := make(chan error, 1)
		go func() { errCh <- container.Server.Start() }()

		// Graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return container.Server.Shutdown(ctx)
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "监听地址")
	serveCmd.Flags().Int("port", 0, "监听端口")
	serveCmd.Flags().Bool("migrate", false, "启动前执行数据库迁移")

	bindFlagToViper("server.host", serveCmd.Flags().Lookup("host"))
	bindFlagToViper("server.port", serveCmd.Flags().Lookup("port"))
}

func runMigrate(ctx context.Context, cfg *config.Config, reset bool) error {
	logger, err := server.NewLogger(cfg)
	if err != nil {
		return err
	}
	db, cleanup, err := database.NewConnection(cfg, logger)
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	defer cleanup()
	if err := database.Migrate(ctx, db, reset); err != nil {
		return fmt.Errorf("执行数据库迁移失败: %w", err)
	}
	return nil
}
