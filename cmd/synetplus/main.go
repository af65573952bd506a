// Command synetplus loads a topology sketch, runs the Propagation
// Orchestrator against it, and logs either the conflicting requirements
// or, on success, the number of generated OSPF requirements.
//
// Its shape follows the teacher's cmd/main.go: load inputs, construct
// the top-level object, run it, log the outcome.
package main

import (
	"flag"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/grapefruit0/synet-plus/orchestrator"
	"github.com/grapefruit0/synet-plus/smtctx"
	"github.com/grapefruit0/synet-plus/synetconfig"
)

func main() {
	sketchPath := flag.String("sketch", "", "path to the topology/requirements sketch (YAML)")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.WithField("run_id", uuid.New().String())
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *sketchPath == "" {
		log.Fatal("-sketch is required")
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, log)
	}

	if err := run(*sketchPath, log); err != nil {
		log.WithError(err).Fatal("synthesis failed")
	}
}

func run(sketchPath string, log *logrus.Entry) error {
	log.WithField("sketch", sketchPath).Info("loading sketch")
	graph, reqs, communities, err := synetconfig.Load(sketchPath)
	if err != nil {
		return err
	}

	log.WithField("requirements", len(reqs)).Info("building orchestrator")
	o := orchestrator.New(graph, communities)

	result, err := o.Run(reqs, smtctx.NewReferenceSolver())
	if err != nil {
		return err
	}

	if len(result.UnmatchingOrders) > 0 {
		log.WithField("conflicts", len(result.UnmatchingOrders)).Error("requirements are not jointly realizable")
		for _, u := range result.UnmatchingOrders {
			log.WithFields(logrus.Fields{"net": u.Net, "node": u.Node}).Error("unrealizable order")
		}
		return nil
	}

	log.WithField("ospf_requirements", len(result.OSPFRequirements)).Info("synthesis complete")
	return nil
}

func serveMetrics(addr string, log *logrus.Entry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.WithField("addr", addr).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("metrics server stopped")
	}
}
