package cli

import (
	"fmt"

	"github.com/soyeahso/llmsession/internal/demo"
	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	var (
		withMetrics bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the stateless vs stateful demonstration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, withMetrics, metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "print Prometheus metrics after the run")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	return cmd
}

func runDemo(cmd *cobra.Command, printMetrics bool, metricsAddr string) error {
	if err := checkConfig(); err != nil {
		return err
	}

	e, err := newEngine(printMetrics || metricsAddr != "")
	if err != nil {
		return err
	}
	defer e.Close()

	if metricsAddr != "" {
		_, stop, err := e.serveMetrics(metricsAddr)
		if err != nil {
			return err
		}
		defer stop()
	}

	out := cmd.OutOrStdout()
	d := &demo.Driver{
		Stateless: e.stateless(),
		Stateful:  e.stateful(),
		Out:       out,
		Log:       log,
	}
	if err := d.Run(cmd.Context()); err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	if printMetrics {
		fmt.Fprintln(out)
		return e.metrics.WriteText(out)
	}
	return nil
}
