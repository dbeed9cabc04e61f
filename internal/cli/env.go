package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"labportal/config"
	"labportal/internal/repository"
	"labportal/internal/service"
	"labportal/pkg/database"
	"labportal/pkg/jwt"
	applogger "labportal/pkg/logger"
)

// env 命令执行期依赖，每条命令独立建立、用完即关
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	stores *database.Stores
	repo   *repository.Repository
	svc    *service.Service
}

// openRuntime 加载配置并连接三个数据源
// CLI 不连接 Redis：吊销与限流只对 HTTP 入口有意义
func openRuntime(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	stores, err := database.OpenStores(cfg, logger)
	if err != nil {
		return nil, err
	}

	repo := repository.NewRepository(stores.Optimus, stores.Backstage, stores.Auth)
	svc := service.NewService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, logger)

	return &env{cfg: cfg, logger: logger, stores: stores, repo: repo, svc: svc}, nil
}

func (r *env) Close() {
	r.stores.Close()
	_ = r.logger.Sync()
}
