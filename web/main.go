package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/rayito/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	webServer := server.NewServer(*port, log.Logger)
	log.Info().Int("port", *port).Msgf("Visit http://localhost:%d/api/scenes to get started", *port)

	if err := webServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
