// Command sealparam seals a signing secret and writes it to the
// system_parameters table, creating or rotating the record the API reads
// its signing material from.
//
//	AUTH_SECRETBOX_KEY=... POSTGRES_DSN=... sealparam -secret <value> -ttl 3600
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/config"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/observability"
	"github.com/spec-kit/metering-service/internal/persistence"
	"github.com/spec-kit/metering-service/internal/repository"
)

func main() {
	secret := flag.String("secret", "", "plaintext signing secret to seal")
	ttlSeconds := flag.Int("ttl", 3600, "token lifetime in seconds")
	printOnly := flag.Bool("print", false, "print the sealed value instead of writing it")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "usage: sealparam -secret <value> [-ttl seconds] [-print]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	key, err := auth.ParseSecretboxKey(cfg.Auth.SecretboxKey)
	if err != nil {
		log.Fatalf("invalid AUTH_SECRETBOX_KEY: %v", err)
	}

	sealed, err := auth.SealSecret(key, []byte(*secret))
	if err != nil {
		log.Fatalf("seal secret: %v", err)
	}

	if *printOnly {
		fmt.Println(sealed)
		return
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	params := repository.NewSystemParameterRepository(pg.PoolHandle())
	err = params.Upsert(ctx, &domain.SystemParameter{
		Name:       cfg.Auth.SigningParamName,
		Value:      sealed,
		TTLSeconds: *ttlSeconds,
	})
	if err != nil {
		log.Fatalf("write %s: %v", cfg.Auth.SigningParamName, err)
	}

	fmt.Printf("updated %s (ttl %ds)\n", cfg.Auth.SigningParamName, *ttlSeconds)
}
