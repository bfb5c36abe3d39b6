package main

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/gpublas/gpublas/internal/compute"
)

type deviceReport struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
	Adapter   string `json:"adapter,omitempty"`
	Vendor    string `json:"vendor,omitempty"`
	Backend   string `json:"backend,omitempty"`
}

func infoCmd() *cli.Command {
	var (
		asJSON    bool
		logLevel  string
		logFormat string
	)
	return &cli.Command{
		Name:  "info",
		Usage: "probe the WebGPU adapter and report device details",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "emit machine-readable output", Destination: &asJSON},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error", Destination: &logLevel},
			&cli.StringFlag{Name: "log-format", Value: "text", Usage: "text or json", Destination: &logFormat},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			log := newLogger(c, cfg, logLevel, logFormat)

			report := deviceReport{Available: true}
			cc, err := compute.Acquire()
			if err != nil {
				report.Available = false
				report.Error = err.Error()
			} else {
				cc.SetLogger(log)
				info := cc.AdapterInfo()
				report.Adapter = info.Device
				report.Vendor = info.Vendor
				report.Backend = cc.Name()
			}

			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			if !report.Available {
				fmt.Printf("device:  unavailable (%s)\n", report.Error)
				return nil
			}
			fmt.Printf("device:  %s\n", report.Backend)
			fmt.Printf("adapter: %s\n", report.Adapter)
			fmt.Printf("vendor:  %s\n", report.Vendor)
			return nil
		},
	}
}
