package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhsanaei/memo/config"
	"github.com/mhsanaei/memo/database"
	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/web"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		logger.Error("start server err:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				logger.Error("restart server err:", err)
				return
			}
		default:
			logger.Info("received", sig, "shutting down")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() error {
	initLogger()
	defer logger.CloseLogger()

	c, err := config.GetDatabaseConfig()
	if err != nil {
		return err
	}
	fmt.Printf("Start migrating %s database...\n", c.Type)
	store, err := database.Open(context.Background(), c)
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return err
	}
	fmt.Println("Migration done!")
	return nil
}

func main() {
	var envFiles []string

	var rootCmd = &cobra.Command{
		Use:   "memo",
		Short: "Personal memo panel",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(envFiles...)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "dotenv files to load (default .env.local, .env)")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateDb()
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetName(), config.GetVersion())
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
