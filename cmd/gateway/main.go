package main

import (
	"log/slog"
	"os"

	"shareit/app/gateway"
	"shareit/config"
	"shareit/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	e := echo.New()
	e.HideBanner = true
	gateway.RegisterMiddlewares(e)
	e.HTTPErrorHandler = httpx.ErrorHandler(log)

	h := &gateway.Handlers{
		Client: gateway.NewClient(cfg.ServerURL),
		V:      validator.New(),
		Log:    log,
	}
	gateway.Register(e, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting gateway", "port", port, "server_url", cfg.ServerURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
