package spindle

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

func Main() {
	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dir, err := os.Getwd()
	if err != nil {
		slogger.Error(err.Error())
	}

	dbPath := filepath.Join(dir, "spindle.db")
	staticDir := filepath.Join(dir, "static")

	srv, err := NewServer(&Config{
		Addr:    "127.0.0.1:7878",
		Workers: 4,
		DBPath:  dbPath,
		Logger:  slogger,
	})
	if err != nil {
		slogger.Error(err.Error())
		return
	}

	hello := StaticFileHandler(staticDir, "hello.html", 200)
	srv.Handle("/", hello)
	srv.Handle("/sleep", SleepHandler(5*time.Second, hello))
	srv.HandleNotFound(StaticFileHandler(staticDir, "404.html", 404))

	if err = srv.Start(); err != nil {
		slogger.Error(err.Error())
	}
}
