// cmd/seeduser/main.go: creates the panel's admin user if it does not exist.
// Uso: go run ./cmd/seeduser -usuario admin -password 1234
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"lavadero/internal/config"
	"lavadero/internal/infra"
	"lavadero/internal/model"
	"lavadero/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	usuario := flag.String("usuario", "admin", "nombre de usuario")
	password := flag.String("password", "1234", "contraseña")
	rol := flag.String("rol", model.TurnoAdmin, "rol: admin | dia | noche")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	repo := repository.NewUsuarioRepository(db)
	created, err := repo.CreateIfMissing(ctx, &model.Usuario{
		Usuario:  *usuario,
		Password: *password,
		Rol:      *rol,
		Activo:   true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	if created {
		log.Info().Str("usuario", *usuario).Str("rol", *rol).Msg("usuario creado")
		return
	}
	log.Info().Str("usuario", *usuario).Msg("el usuario ya existe; sin cambios")
}
