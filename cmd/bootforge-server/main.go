package main

import (
	"context"
	"log"
	"net/http"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
	"github.com/BootforgeIO/bootforge/internal/config"
	"github.com/BootforgeIO/bootforge/internal/dispatch"
	"github.com/BootforgeIO/bootforge/internal/history"
	httpserver "github.com/BootforgeIO/bootforge/internal/http"
	v1 "github.com/BootforgeIO/bootforge/internal/http/v1"
	"github.com/BootforgeIO/bootforge/internal/tasks"
	"github.com/BootforgeIO/bootforge/internal/worker"
)

func main() {
	cfg := config.Load()

	st, err := history.Open(cfg.HistoryDB)
	if err != nil {
		log.Printf("run history disabled: %v", err)
		st = nil
	} else {
		v1.History = st
		defer st.Close()
	}

	ex := bootstrap.New(bootstrap.NewHostSystem())
	w := worker.New(cfg.NodeID, ex, tasks.Default, dispatch.Default, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	log.Printf("bootforge-server listening on %s node=%s", cfg.Addr, cfg.NodeID)
	if err := http.ListenAndServe(cfg.Addr, httpserver.NewServer()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
