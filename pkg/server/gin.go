package server

import (
	"Petly/config"
	"Petly/middleware"
	"Petly/pkg/log"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider struct {
	Config *config.Config
	Engine *gin.Engine
}

var (
	once sync.Once
	// instance id used in logs
	serverId string
)

func init() {
	once.Do(func() {
		ip, err := getLocalIP()
		if err != nil {
			ip = "127.0.0.1"
		}
		host, _ := os.Hostname()
		serverId = fmt.Sprintf("%s/%s", host, ip)
	})
}

func GetServerId() string {
	return serverId
}

func getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	return "", errors.New("no ip address found")
}

func NewGinEngine(cfg *config.Config, h *Handlers) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(CORSMiddleware())
	r.Use(middleware.GinZap(), gin.Recovery(), middleware.PrometheusMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	h.Auth.RegisterRouter(api)
	h.User.RegisterRouter(api)
	h.Pet.RegisterRouter(api)
	h.Business.RegisterRouter(api)
	h.Appointment.RegisterRouter(api)
	h.Points.RegisterRouter(api)
	h.Referral.RegisterRouter(api)
	h.Notification.RegisterRouter(api)
	h.Upload.RegisterRouter(api)
	h.Admin.RegisterRouter(api)
	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Length, X-Requested-With, X-Idempotency-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Run serves HTTP on port until a termination signal arrives or one of the
// background tasks fails.
func Run(ctx *cli.Context, name string, port int, handler http.Handler, tasks ...func(context.Context) error) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	log.L.Info("server starting", zap.String("name", name), zap.String("serverId", serverId), zap.Int("port", port))

	return run(c, eg, groupCtx, name, port, handler, tasks)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, name string, port int, handler http.Handler, tasks []func(context.Context) error) error {
	serv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		err := serv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// tasks stop when ctx is cancelled by the signal branch below
	taskCtx, stopTasks := context.WithCancel(ctx)
	defer stopTasks()
	for _, task := range tasks {
		eg.Go(func() error { return task(taskCtx) })
	}

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("name", name), zap.String("serverId", serverId))
			stopTasks()

			timeCtx, timeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Info("server stopping", zap.String("serverId", serverId), zap.Error(err))
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.L.Info("server stopping", zap.Error(err))
		return err
	}

	log.L.Info("server stopped", zap.String("name", name), zap.String("serverId", serverId))
	return nil
}
