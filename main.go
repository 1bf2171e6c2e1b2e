package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pqh/blog/config"
	"github.com/pqh/blog/models"
	"github.com/pqh/blog/routes"
	"github.com/pqh/blog/security"
	"github.com/pqh/blog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.InitDatabase(cfg, &models.User{}, &models.Story{}, &models.Comment{})
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}

	var revoked security.RevocationList
	if rc := utils.NewRedisClient(cfg); rc != nil {
		revoked = security.NewRedisRevocationList(rc)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := routes.SetupRouter(cfg, db, revoked, reg)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
