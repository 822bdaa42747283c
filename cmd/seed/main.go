package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/config"
	"github.com/hs-nautilus/watchbill/backend/internal/repository"
	"github.com/hs-nautilus/watchbill/backend/internal/seed"
	"github.com/hs-nautilus/watchbill/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op, n int
	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机人员, 3: 插入真实花名册和示例日历)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置", "error", err)
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		seedRandomUsers(cfg, repo, n)
	case 2:
		seedRandomPersonnel(repo, n)
	case 3:
		seed.SeedRealData(repo)
	default:
		slog.Error("未指定操作或操作非法", "op", op)
		os.Exit(1)
	}
}

func seedRandomUsers(cfg *config.Config, repo *repository.Repository, n int) {
	if n <= 0 {
		slog.Error("请输入合法的用户数量", "n", n)
		return
	}

	inserted := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机用户", "error", err)
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("无法插入用户", "error", err)
			continue
		}
		inserted++
	}

	slog.Info("插入用户成功", "count", inserted)
}

func seedRandomPersonnel(repo *repository.Repository, n int) {
	if n <= 0 {
		slog.Error("请输入合法的人员数量", "n", n)
		return
	}

	inserted := 0
	for i := 0; i < n; i++ {
		if err := repo.CreatePerson(utils.GenerateRandomPerson()); err != nil {
			slog.Error("无法插入人员", "error", err)
			continue
		}
		inserted++
	}

	slog.Info("插入人员成功", "count", inserted)
}
