package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	httpadapter "github.com/timf34/cpr-appropriation/internal/adapter/http"
	metricsinmem "github.com/timf34/cpr-appropriation/internal/adapter/metrics/inmemory"
	gormrepo "github.com/timf34/cpr-appropriation/internal/adapter/repo/gorm"
	memoryrepo "github.com/timf34/cpr-appropriation/internal/adapter/repo/memory"
	"github.com/timf34/cpr-appropriation/internal/app/observe"
	"github.com/timf34/cpr-appropriation/internal/app/ports"
	"github.com/timf34/cpr-appropriation/internal/app/replay"
	"github.com/timf34/cpr-appropriation/internal/app/sim"
	"github.com/timf34/cpr-appropriation/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	episodes, transitions, snapshots, txManager := mustBuildRepos()
	registry := sim.NewRegistry()
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		SimUC: sim.UseCase{
			Registry:    registry,
			Episodes:    episodes,
			Transitions: transitions,
			Snapshots:   snapshots,
			TxManager:   txManager,
			Metrics:     kpiRecorder,
		},
		ObserveUC: observe.UseCase{Registry: registry},
		StatusUC:  status.UseCase{Registry: registry, Episodes: episodes},
		ReplayUC:  replay.UseCase{Transitions: transitions},
		KPI:       kpiRecorder,
	}

	if demoAgents := intEnv("CPRSIM_DEMO_AGENTS", 0); demoAgents > 0 {
		resp, err := h.SimUC.Create(context.Background(), sim.CreateRequest{
			NAgents:    demoAgents,
			GridWidth:  intEnv("CPRSIM_DEMO_GRID_WIDTH", 25),
			GridHeight: intEnv("CPRSIM_DEMO_GRID_HEIGHT", 15),
			Seed:       int64(intEnv("CPRSIM_DEMO_SEED", 1)),
		})
		if err != nil {
			log.Fatalf("create demo environment: %v", err)
		}
		log.Printf("demo environment ready: %s", resp.EpisodeID)
	}

	addr := strings.TrimSpace(os.Getenv("CPRSIM_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("cpr simulation server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() (ports.EpisodeRepository, ports.TransitionRepository, ports.GridSnapshotRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("CPRSIM_DB_DSN"))
	if dsn == "" {
		log.Println("CPRSIM_DB_DSN not set, episodes are kept in memory only")
		store := memoryrepo.NewStore()
		return memoryrepo.NewEpisodeRepo(store), memoryrepo.NewTransitionRepo(store), memoryrepo.NewGridSnapshotRepo(store), memoryrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("CPRSIM_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return gormrepo.NewEpisodeRepo(db), gormrepo.NewTransitionRepo(db), gormrepo.NewGridSnapshotRepo(db), gormrepo.NewTxManager(db)
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
