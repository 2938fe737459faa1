// Command school-records manages student and course records.
//
// It can serve the records over HTTP:
//
//	go run ./cmd/school-records serve --config=config/local.yaml
//
// or work on them directly from the command line:
//
//	go run ./cmd/school-records student list
//	go run ./cmd/school-records course add --name Algorithms --student-id 42
//
// Configuration comes from the --config YAML file, CONFIG_PATH, a .env
// file, or plain environment variables (see internal/config).
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
