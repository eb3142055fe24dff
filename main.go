package main

import (
	"flag"
	"fmt"
	"os"

	"faceguard.io/application/replay"
	"faceguard.io/infrastructure"
	"faceguard.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	fixturePath := flag.String("replay", "", "replay a recorded fixture instead of starting the server")
	flag.Parse()

	if *fixturePath != "" {
		os.Exit(runReplay(*fixturePath))
	}
	infrastructure.StartServer()
}

func runReplay(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	results, err := replay.Run(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	for i, r := range results {
		fmt.Printf("%3d %-8s %-9s %-22s final=%.3f smoothed=%.3f real=%d spoof=%d\n",
			i, r.FrameID, r.Verdict, r.DebugTag, r.FinalScore, r.SmoothedScore, r.RealConsecutive, r.SpoofConsecutive)
	}
	if len(f.Expected) == 0 {
		return 0
	}
	mismatches := replay.Compare(results, f.Expected)
	for _, m := range mismatches {
		fmt.Fprintln(os.Stderr, m.String())
	}
	if len(mismatches) > 0 {
		return 1
	}
	fmt.Printf("all %d frames match\n", len(results))
	return 0
}
