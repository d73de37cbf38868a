package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatkb/config"
	"chatkb/internal/server"
)

func main() {
	root := &cobra.Command{Use: "chatkbd", Short: "Chatbot fulfillment backend and gateway"}
	root.AddCommand(serveCMD(), gatewayCMD())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCMD() *cobra.Command {
	var cfgPath string
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the fulfillment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			return server.RunFulfillment(cfg)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serve.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config)")
	return serve
}

func gatewayCMD() *cobra.Command {
	var cfgPath string
	var addr string
	gateway := &cobra.Command{
		Use:   "gateway",
		Short: "Run the HTTP-to-bot chat gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Gateway.Address = addr
			}
			return server.RunGateway(cfg)
		},
	}
	gateway.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	gateway.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config)")
	return gateway
}
