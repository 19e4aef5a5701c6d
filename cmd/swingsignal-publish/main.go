package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/swingsignal/internal/common"
	"github.com/ternarybob/swingsignal/internal/publish"
	"github.com/ternarybob/swingsignal/internal/report"
)

var (
	weekly      = flag.Bool("weekly", false, "Publish as a weekly report")
	reportsDir  = flag.String("reports", "./reports", "Reports directory to publish into")
	keepSource  = flag.Bool("keep", false, "Keep the source file after publishing")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("swingsignal-publish version %s\n", common.GetVersion())
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: swingsignal-publish [-weekly] [-reports dir] [-keep] <report.json>")
		os.Exit(2)
	}

	logger := common.GetLogger()

	kind := report.KindDaily
	if *weekly {
		kind = report.KindWeekly
	}

	var opts []publish.Option
	if *keepSource {
		opts = append(opts, publish.WithKeepSource())
	}

	publisher := publish.NewPublisher(*reportsDir, logger, opts...)

	result, err := publisher.Publish(flag.Arg(0), kind)
	if err != nil {
		logger.Fatal().Err(err).Str("file", flag.Arg(0)).Msg("Publish failed")
		os.Exit(1)
	}

	fmt.Printf("Report published: %s (%d signals)\n", result.Date, result.SignalCount)
	fmt.Printf("  %s\n", result.DatedPath)
	fmt.Printf("  %s\n", result.LatestPath)
}
