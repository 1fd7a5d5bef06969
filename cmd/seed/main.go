package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/internal/application"
	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	pginfra "github.com/oksasatya/growth-partner/internal/infrastructure/postgres"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "create a demo user with a couple of goals",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: "Ann", Usage: "user name"},
			&cli.StringFlag{Name: "email", Value: "ann@example.com", Usage: "user email"},
			&cli.StringSliceFlag{Name: "goal", Value: cli.NewStringSlice("Learn Go", "Run 5k"), Usage: "goal title (repeatable)"},
			&cli.BoolFlag{Name: "migrate", Value: true, Usage: "apply migrations first"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	if c.Bool("migrate") {
		if err := pginfra.RunMigrations(db.DB, cfg.MigrationsDir, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	users := pginfra.NewUserRepository(db)
	goals := pginfra.NewGoalRepository(db)
	userSvc := application.NewUserService(users, logger)
	goalSvc := application.NewGoalService(users, goals, logger)

	name, err := entity.NewUserName(c.String("name"))
	if err != nil {
		return err
	}
	email, err := entity.NewUserEmail(c.String("email"))
	if err != nil {
		return err
	}

	u, err := userSvc.CreateUser(ctx, entity.CreateUser{Name: name, Email: email})
	if apperror.IsEmailAlreadyExists(err) {
		u, err = users.FindByEmail(ctx, email.String())
	}
	if err != nil {
		return err
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.Name)

	for _, raw := range c.StringSlice("goal") {
		title, err := entity.NewGoalTitle(raw)
		if err != nil {
			return err
		}
		desc, _ := entity.NewGoalDescription("")
		g, err := goalSvc.CreateGoal(ctx, entity.CreateGoal{UserID: u.ID, Title: title, Description: desc})
		if err != nil {
			return err
		}
		fmt.Printf("seeded goal: id=%s title=%q status=%s\n", g.ID, g.Title, g.Status)
	}
	return nil
}
