package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.thinkinpower.net/bincheck/bdata"
	"git.thinkinpower.net/bincheck/binlist"
	"git.thinkinpower.net/bincheck/config"
	"git.thinkinpower.net/bincheck/credential"
	"git.thinkinpower.net/bincheck/data"
	"git.thinkinpower.net/bincheck/event"
	"git.thinkinpower.net/bincheck/geocode"
	"git.thinkinpower.net/bincheck/middleware"
	"git.thinkinpower.net/bincheck/resolve"
	"git.thinkinpower.net/bincheck/route"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func setMode(mode string) {
	switch mode {
	case data.RunModeDev:
		gin.SetMode(gin.DebugMode)
	case data.RunModeTest:
		gin.SetMode(gin.TestMode)
	case data.RunModeRelease:
		gin.SetMode(gin.ReleaseMode)
	}
}

func main() {
	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logger.InfoLevel)

	port := flag.Int("p", 0, "-p 8080")
	mode := flag.String("m", "", "-m [dev|test|release]")
	dataDir := flag.String("d", "", "-d /home/testuser/bincheck")
	flag.Parse()

	cfg, err := config.LoadConfig(".", config.Overrides{Port: *port, RunMode: *mode, DataDir: *dataDir})
	if err != nil {
		logger.Fatalf("加载配置失败: %s", err)
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)

	if err = run(cfg); err != nil {
		logger.Fatal(err)
	}
	logger.Info("Server exit.")
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return errors.Wrapf(err, "create data dir %s", cfg.DataDir)
	}

	db, err := bdata.NewBinDatabase(ctx, bdata.BinDataConfig{
		Mode:        cfg.StoreMode,
		SqlitePath:  cfg.SqlitePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	history := bdata.Observe(db)

	credentials, err := credential.NewFileStore(cfg.CredentialFile)
	if err != nil {
		return err
	}

	resolver, err := resolve.New(history,
		binlist.NewClient(cfg.BinlistBaseURL, cfg.UserAgent, cfg.HTTPTimeout),
		geocode.NewClient(cfg.GeocodingBaseURL, cfg.UserAgent, cfg.HTTPTimeout),
		credentials,
	)
	if err != nil {
		return err
	}

	publisher := event.Connect(cfg.RabbitMQURL)
	defer publisher.Close()

	//启动http服务
	logger.WithFields(logger.Fields{"port": cfg.Port, "store": cfg.StoreMode, "mode": cfg.RunMode}).Info("启动http服务...")
	setMode(cfg.RunMode)
	r := gin.New()
	r.Use(middleware.RequestId())
	r.Use(middleware.Log())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	handler := route.NewHandler(resolver, history, credentials, publisher)
	route.Register(r, handler)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	//关闭时结束SSE长连接
	srv.RegisterOnShutdown(handler.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		return credentials.Watch(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	})
	return g.Wait()
}
