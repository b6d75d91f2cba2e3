package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"

	"github.com/thriveremote/thrive-server/gamify"
	"github.com/thriveremote/thrive-server/internal/config"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/server"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/sessions/redisrepo"
	"github.com/thriveremote/thrive-server/store/gormstore"
	"github.com/thriveremote/thrive-server/store/memstore"
)

const sweepInterval = time.Hour

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	engine, err := buildEngine(c)
	if err != nil {
		return fmt.Errorf("buildEngine: %w", err)
	}

	handler, err := server.New(c, engine)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, engine)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildEngine wires the storage backend, session store, ledger, and engine
// from the environment: in-memory by default, Postgres with STORAGE=postgres,
// Redis-backed sessions with REDIS_ADDR set.
func buildEngine(c config.Config) (*gamify.Service, error) {
	var (
		repos       gamify.Repos
		sessionRepo sessions.Repo
		ledgerRepo  ledger.Repo
	)

	switch backend := c.GetStorageBackend(); backend {
	case config.StoragePostgres:
		store, err := gormstore.Open(c.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("gormstore.Open: %w", err)
		}
		repos = gamify.Repos{
			Users:        store.Users(),
			Achievements: store.Achievements(),
			Tasks:        store.Tasks(),
			Applications: store.Applications(),
		}
		sessionRepo = store.Sessions()
		ledgerRepo = store.Ledger()
	case config.StorageMemory:
		store := memstore.New()
		repos = gamify.Repos{
			Users:        store.Users(),
			Achievements: store.Achievements(),
			Tasks:        store.Tasks(),
			Applications: store.Applications(),
		}
		sessionRepo = store.Sessions()
		ledgerRepo = store.Ledger()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	if addr := c.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		sessionRepo = redisrepo.New(client)
	}

	tokens, err := sessions.NewStore(sessionRepo,
		sessions.WithTTL(time.Duration(c.GetSessionTTLHours())*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("sessions.NewStore: %w", err)
	}
	points, err := ledger.New(ledgerRepo)
	if err != nil {
		return nil, fmt.Errorf("ledger.New: %w", err)
	}

	return gamify.NewService(repos, tokens, points,
		gamify.WithAnonymousID(c.GetAnonymousUserID()))
}

func sweepSessions(ctx context.Context, engine *gamify.Service) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed, err := engine.SweepSessions(ctx); err != nil {
				log.Printf("Session sweep failed: %s\n", err)
			} else if removed > 0 {
				log.Printf("Session sweep removed %d expired sessions\n", removed)
			}
		}
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
